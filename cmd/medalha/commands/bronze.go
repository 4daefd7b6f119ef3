package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dlima/medalha/internal/bronze"
	"github.com/dlima/medalha/pkg/httputil"
)

// bronzeCmd represents the bronze command
var bronzeCmd = &cobra.Command{
	Use:   "bronze",
	Short: "Fetch the upstream report into the bronze layer",
	Long: `Downloads the COVID report from the public API and stores the
payload verbatim as JSON at <BLOB_FOLDER>/<BLOB_FILE_NAME>.

A non-success upstream status aborts the run before any write; there
is no retry.`,
	RunE: runBronze,
}

func init() {
	rootCmd.AddCommand(bronzeCmd)
}

func runBronze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer d.recorder.Close()

	client := httputil.New(d.log, d.cfg.Report.Timeout).WithRateLimit(1, 1)
	fetcher := bronze.NewFetcher(client, d.store, d.log, d.cfg.Report.URL, d.cfg.Blob.BronzeFolder, d.cfg.Blob.BronzeFile)

	started := time.Now()
	err = fetcher.Run(ctx)
	record(ctx, d, "bronze", 0, started, err)
	if err != nil {
		return err
	}

	d.log.Info("Report successfully sent to the data lake")
	return nil
}
