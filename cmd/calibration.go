package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/finpsych/internal/calibration"
)

var calibrationShowOpts struct {
	file string
	yaml bool
}

var calibrationCmd = &cobra.Command{
	Use:   "calibration",
	Short: "Inspect and check calibration tables",
}

var calibrationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active calibration version and hash",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := loadCalibration(calibrationShowOpts.file)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if calibrationShowOpts.yaml {
			data, err := t.Marshal()
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return eris.Wrap(err, "calibration: write")
		}
		_, err = fmt.Fprintf(w, "model_version:    %s\ncalibration_hash: %s\ncountries:        %d\nquestions:        %d\n",
			t.ModelVersion, t.Hash(), len(t.CountryNorms), len(t.QuestionConstructs))
		return eris.Wrap(err, "calibration: write")
	},
}

var calibrationValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a calibration overlay file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := calibration.LoadFile(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (model_version %s, hash %s)\n", args[0], t.ModelVersion, t.Hash())
		return eris.Wrap(err, "calibration: write")
	},
}

func init() {
	calibrationShowCmd.Flags().StringVar(&calibrationShowOpts.file, "calibration", "", "calibration YAML overlay (overrides config)")
	calibrationShowCmd.Flags().BoolVar(&calibrationShowOpts.yaml, "yaml", false, "dump the full tables as YAML")

	calibrationCmd.AddCommand(calibrationShowCmd, calibrationValidateCmd)
	rootCmd.AddCommand(calibrationCmd)
}
