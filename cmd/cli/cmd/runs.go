package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coverage-analysis/internal/service"
)

var runsLimit int

// runsCmd lists persisted parse runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent parse runs",
	Long:  `List the most recent parse runs from the run history database.`,
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "Number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	conf := GetConfig()
	if conf.Database.Type == "" {
		return fmt.Errorf("run history is disabled (no database configured)")
	}

	svc, err := service.New(conf, log)
	if err != nil {
		return err
	}
	if err := svc.Initialize(cmd.Context()); err != nil {
		return err
	}
	defer svc.Close()

	runs, err := svc.RecentRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Info("No parse runs recorded")
		return nil
	}

	for _, run := range runs {
		log.Info("#%d %s %s %s items=%d score=%.2f%% %.3fs (%s)",
			run.ID, run.CreateTime.Format("2006-01-02 15:04:05"),
			run.Format, run.ReportPath, run.ItemsParsed,
			run.OverallScore, run.ParseTimeSeconds, run.Result)
	}
	return nil
}
