package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dlima/medalha/internal/gold"
	"github.com/dlima/medalha/internal/silver"
	"github.com/dlima/medalha/internal/tables"
	"github.com/dlima/medalha/pkg/blob"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Inspect lake contents and recent run history",
	RunE:  runStatus,
}

var statusHistoryLimit int

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().IntVar(&statusHistoryLimit, "history", 10, "number of recent runs to show")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer d.recorder.Close()

	fmt.Println("=== Data lake status ===")
	fmt.Println()

	bronzeKey := d.cfg.Blob.BronzeFolder + "/" + d.cfg.Blob.BronzeFile
	printObject(ctx, d.store, "bronze", bronzeKey)

	printTable[tables.DimDate](ctx, d.store, "silver", silver.DimDateKey)
	printTable[tables.DimState](ctx, d.store, "silver", silver.DimStateKey)
	printTable[tables.FactCovid](ctx, d.store, "silver", silver.FactKey)
	printTable[tables.CovidCaseView](ctx, d.store, "gold", gold.ViewKey)

	entries, err := d.recorder.Recent(ctx, statusHistoryLimit)
	if err != nil {
		return fmt.Errorf("load run history: %w", err)
	}

	if len(entries) > 0 {
		fmt.Println()
		fmt.Println("=== Recent runs ===")
		for _, e := range entries {
			fmt.Printf("%s  %-7s %-9s rows=%-6d %s\n",
				e.FinishedAt.Format("2006-01-02 15:04:05"),
				e.Stage,
				e.Status,
				e.Rows,
				e.Detail,
			)
		}
	}

	return nil
}

func printObject(ctx context.Context, store blob.Store, layer, key string) {
	data, err := store.Read(ctx, key)
	switch {
	case errors.Is(err, blob.ErrNotFound):
		fmt.Printf("%-7s %-40s (missing)\n", layer, key)
	case err != nil:
		fmt.Printf("%-7s %-40s error: %v\n", layer, key, err)
	default:
		fmt.Printf("%-7s %-40s %d bytes\n", layer, key, len(data))
	}
}

func printTable[T any](ctx context.Context, store blob.Store, layer, key string) {
	data, err := store.Read(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		fmt.Printf("%-7s %-40s (missing)\n", layer, key)
		return
	}
	if err != nil {
		fmt.Printf("%-7s %-40s error: %v\n", layer, key, err)
		return
	}

	rows, err := tables.Decode[T](data)
	if err != nil {
		fmt.Printf("%-7s %-40s error: %v\n", layer, key, err)
		return
	}

	fmt.Printf("%-7s %-40s %d rows\n", layer, key, len(rows))
}
