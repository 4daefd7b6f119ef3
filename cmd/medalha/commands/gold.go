package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dlima/medalha/internal/gold"
)

// goldCmd represents the gold command
var goldCmd = &cobra.Command{
	Use:   "gold",
	Short: "Assemble the denormalized analytical view",
	Long: `Reads the three silver tables, inner-joins the fact table with both
dimensions and overwrites the gold view wholesale. The view is a
derived materialization; it is never merged or accumulated.`,
	RunE: runGold,
}

func init() {
	rootCmd.AddCommand(goldCmd)
}

func runGold(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer d.recorder.Close()

	assembler := gold.NewAssembler(d.store, d.log)

	started := time.Now()
	result, err := assembler.Run(ctx)

	var rows int64
	if result != nil {
		rows = int64(result.ViewRows)
	}
	record(ctx, d, "gold", rows, started, err)
	if err != nil {
		return err
	}

	d.log.Info("Unified view created and saved to the gold layer")
	return nil
}
