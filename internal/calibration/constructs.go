package calibration

// Construct names referenced directly by scoring rules.
const (
	ConstructLocusOfControl      = "locus_of_control"
	ConstructEmergency           = "emergency_preparedness"
	ConstructSocialCollateral    = "social_collateral"
	ConstructCrisisManagement    = "crisis_management"
	ConstructCognitiveReflection = "cognitive_reflection"
	ConstructDelayDiscounting    = "delay_discounting"
	ConstructFinancialNumeracy   = "financial_numeracy"
	ConstructLoanConsequence     = "loan_consequence_awareness"
	ConstructPaymentHistory      = "payment_history"
	ConstructSelfControl         = "self_control"
	ConstructConscientiousness   = "conscientiousness"
	ConstructEmotionalStability  = "emotional_stability"
	ConstructAgreeableness       = "agreeableness"
	ConstructOpenness            = "openness"
	ConstructExtraversion        = "extraversion"
	ConstructSavingBehavior      = "saving_behavior"
	ConstructFinancialPlanning   = "financial_planning"
	ConstructIncomeStability     = "income_stability"
	ConstructDebtManagement      = "debt_management"
	ConstructEconomicOutlook     = "economic_outlook"
)
