package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import submissions into the store",
	Long: `Import questionnaire submissions from a JSON file into the configured
store. Submissions are upserted by id, so re-importing a file is safe.
Entries without an id are assigned one.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(importFile)
		if err != nil {
			return eris.Wrapf(err, "import: read %s", importFile)
		}
		subs, err := decodeSubmissions(data)
		if err != nil {
			return eris.Wrap(err, "import")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.ImportSubmissions(ctx, subs)
		if err != nil {
			return eris.Wrap(err, "import submissions")
		}

		zap.L().Info("import complete",
			zap.Int64("imported", n),
			zap.String("file", importFile),
			zap.String("driver", cfg.Store.Driver),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to a JSON submission file")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
