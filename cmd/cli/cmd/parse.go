package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coverage-analysis/internal/service"
	"github.com/coverage-analysis/pkg/model"
)

var (
	// Parse command flags
	inputFile   string
	remoteKey   string
	formatName  string
	workers     int
	summaryFile string
	pattern     string
)

// parseCmd represents the parse command.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a coverage report file",
	Long: `Parse a coverage report and print its summary.

Supported report formats:
  - groups    : covergroup summary report (default)
  - hierarchy : hierarchical instance coverage
  - modlist   : module list coverage
  - asserts   : assertion coverage
  - dashboard : dashboard summary

Compressed reports (.gz, .zst) are expanded automatically. With
--remote the report is fetched from the configured object storage
first. When run history is enabled the parse outcome is persisted.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	binName := BinName()
	parseCmd.Example = `  # Parse a covergroup report
  ` + binName + ` parse -i ./reports/groups.txt

  # Parse an assertion report and write the summary as JSON
  ` + binName + ` parse -i ./reports/asserts.txt -f asserts -o summary.json

  # Show only groups matching a name pattern
  ` + binName + ` parse -i ./reports/groups.txt --pattern alu`

	parseCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input report file")
	parseCmd.Flags().StringVar(&remoteKey, "remote", "", "Object storage key to fetch instead of a local file")
	parseCmd.Flags().StringVarP(&formatName, "format", "f", "groups", "Report format: groups, hierarchy, modlist, asserts, dashboard")
	parseCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel workers (default: from config)")
	parseCmd.Flags().StringVarP(&summaryFile, "output", "o", "", "Write the summary JSON to this file")
	parseCmd.Flags().StringVar(&pattern, "pattern", "", "Print groups whose name contains this pattern")
}

func runParse(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	if inputFile == "" && remoteKey == "" {
		return fmt.Errorf("either --input or --remote is required")
	}

	format, ok := model.ParseReportFormat(formatName)
	if !ok {
		return fmt.Errorf("unknown report format: %s (valid: groups, hierarchy, modlist, asserts, dashboard)", formatName)
	}

	conf := GetConfig()
	if workers > 0 {
		conf.Parser.MaxWorkers = workers
	}

	svc, err := service.New(conf, log)
	if err != nil {
		return err
	}
	if err := svc.Initialize(cmd.Context()); err != nil {
		return err
	}
	defer svc.Close()

	res, err := svc.Ingest(cmd.Context(), service.IngestRequest{
		Path:      inputFile,
		RemoteKey: remoteKey,
		Format:    format,
	})
	if err != nil {
		return err
	}

	svc.Report(res)

	if pattern != "" {
		for _, g := range res.Database.GroupsByPattern(pattern) {
			log.Info("  %-40s %d/%d (%.2f%%)", g.Name, g.Covered, g.Expected, g.Score)
		}
	}

	if summaryFile != "" {
		if err := writeSummary(svc.Summary(res), summaryFile); err != nil {
			return err
		}
		log.Info("Summary written to %s", summaryFile)
	}

	if !res.Code.OK() {
		return fmt.Errorf("parse finished with %s: %s", res.Code, res.Code.Message())
	}
	return nil
}

func writeSummary(summary map[string]interface{}, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
