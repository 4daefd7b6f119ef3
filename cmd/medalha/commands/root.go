package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "medalha",
	Short: "Medallion batch pipeline for Brazilian COVID reports",
	Long: `medalha - bronze/silver/gold data lake pipeline

Each subcommand runs one pipeline stage as an independent,
non-interactive process. Stages are meant to be invoked by an
external scheduler, one at a time:

  bronze  fetch the upstream COVID report, store the raw JSON
  silver  derive dim_date, dim_state and fact_covid, merge into the lake
  gold    join the silver tables into the covid_cases_view
  status  inspect lake contents and recent run history

Examples:
  medalha bronze
  medalha silver
  medalha gold
  medalha status`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
