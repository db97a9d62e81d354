package scorer

import "github.com/sells-group/finpsych/internal/model"

// sampleResponses is a complete, plausible questionnaire submission.
func sampleResponses() model.Responses {
	return model.Responses{
		"demo_age":    "34",
		"demo_gender": "Female",
		"dem_region":  "Nairobi",

		// Payment history, saving behavior.
		"q1": "Always", "q2": "Often", "q3": "Always", "q4": "Rarely",
		"q5": "Often", "q6": "Sometimes", "q7": "Rarely",

		// Self-control and personality.
		"q8": "Often", "q9": "Often", "q10": "Rarely", "q11": "Sometimes",
		"q12": "Always", "q13": "Often", "q14": "Never", "q15": "Often",
		"q16": "Often", "q17": "Rarely", "q18": "Sometimes", "q19": "Often",
		"q20": "Often", "q21": "Always", "q22": "Rarely", "q23": "Often",
		"q24": "Sometimes", "q25": "Often", "q26": "Sometimes", "q27": "Often",
		"q28": "Sometimes", "q29": "Often", "q30": "Sometimes", "q31": "Sometimes",

		// Locus of control.
		"q32": "My financial success depends mainly on my own efforts.",
		"q33": "If I plan carefully, I can reach my financial goals.",
		"q34": "Luck plays the biggest role in what happens to my money.",
		"q35": "Getting ahead financially is a matter of hard work, not luck.",
		"q36": "I can avoid money problems by making good decisions.",

		// Emergency preparedness, social collateral.
		"q37": "1-3 months", "q38": "Likely", "q39": "Unlikely",
		"q40": "2-3 people", "q41": "Likely", "q42": "Not sure",

		"q43": `["Contact lender","Cut expenses","Borrow from family","Sell assets","Skip payments","Take another loan"]`,

		// Cognitive reflection, delay discounting.
		"q44": "$0.05", "q45": "100", "q46": "47",
		"q47": "KSh 1,500 in one month", "q48": "KSh 500 today",

		// Numeracy.
		"q49": "More than 102", "q50": "Less than today", "q51": "True",
		"asfn1_1": "250", "asfn1_2": "40", "asfn1_3": "1,200", "asfn1_4": "2 days", "asfn1_5": "Shop B",
		"asfn2_1": "10%", "asfn2_2": "1,331", "asfn2_3": "Loan B", "asfn2_4": "6 months", "asfn2_5": "2,750",

		// Planning, income, debt, outlook.
		"q52": "Often", "q53": "Often", "q54": "Sometimes", "q55": "Rarely",
		"q56": "Sometimes", "q57": "Often", "q58": "Sometimes",
		"q59": "Often", "q60": "Rarely", "q61": "Often",
		"q62": "Sometimes", "q63": "Often", "q64": "Sometimes", "q65": "Often",

		// Loan consequence awareness.
		"lca1": "A) Call the lender", "lca2": "C) Ask for an extension",
		"lca3": "C) Read the contract", "lca4": "B) Pay part now", "lca5": "A) Budget first",

		// Gaming detection duplicates.
		"gd1": "Often", "gd2": "Sometimes", "gd3": "Often", "gd4": "Never",
	}
}
