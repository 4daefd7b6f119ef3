package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dlima/medalha/internal/silver"
)

// silverCmd represents the silver command
var silverCmd = &cobra.Command{
	Use:   "silver",
	Short: "Transform the bronze payload into the dimensional model",
	Long: `Reads the raw report from the bronze layer, derives the date and
state dimensions plus the fact table, and merges each into its silver
object by natural-key upsert. Re-running the same batch is idempotent.`,
	RunE: runSilver,
}

func init() {
	rootCmd.AddCommand(silverCmd)
}

func runSilver(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer d.recorder.Close()

	bronzeKey := d.cfg.Blob.BronzeFolder + "/" + d.cfg.Blob.BronzeFile
	stage := silver.NewStage(d.store, d.log, bronzeKey)

	started := time.Now()
	result, err := stage.Run(ctx)

	var rows int64
	if result != nil {
		rows = int64(result.DateRows + result.StateRows + result.FactRows)
	}
	record(ctx, d, "silver", rows, started, err)
	if err != nil {
		return err
	}

	d.log.Info("Data transformed and saved to the silver layer")
	return nil
}
