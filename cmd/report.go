package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"adpace/internal/core/port"
	"adpace/internal/render"
)

var (
	flagCampaignID string
	flagTimezone   string
	flagFrom       string
	flagTo         string
	flagCSVDir     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "One-shot pacing report for a campaign",
	Long: "Computes the pacing report for one campaign and prints it. With " +
		"--csv-dir the six rollup views, the daily pacing table and the " +
		"weekly outlook are also written as CSV files.",
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagCampaignID, "campaign-id", "", "Campaign to pace (required)")
	reportCmd.Flags().StringVar(&flagTimezone, "tz", "", "Timezone name or abbreviation (default from config)")
	reportCmd.Flags().StringVar(&flagFrom, "from", "", "Window start, YYYY-MM-DD (default campaign start)")
	reportCmd.Flags().StringVar(&flagTo, "to", "", "Window end, YYYY-MM-DD (default campaign end)")
	reportCmd.Flags().StringVar(&flagCSVDir, "csv-dir", "", "Directory to write CSV outputs into")
	_ = reportCmd.MarkFlagRequired("campaign-id")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, pool, _, _, err := buildUseCase(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	req := port.PacingReq{CampaignID: flagCampaignID, Timezone: flagTimezone}
	if req.From, err = parseDateFlag(flagFrom); err != nil {
		return err
	}
	if req.To, err = parseDateFlag(flagTo); err != nil {
		return err
	}

	pacing, err := svc.Pacing(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println(pacing.Text)

	if flagCSVDir == "" {
		return nil
	}
	if err = os.MkdirAll(flagCSVDir, 0o755); err != nil {
		return err
	}

	rollups, err := svc.Rollups(ctx)
	if err != nil {
		return err
	}
	for _, table := range render.RollupTables(rollups) {
		if err = writeFile(table.Name+".csv", table.CSV()); err != nil {
			return err
		}
	}

	pacingCSV, err := svc.PacingCSV(ctx, req)
	if err != nil {
		return err
	}
	if err = writeFile("pacing_daily.csv", pacingCSV); err != nil {
		return err
	}

	outlook, err := svc.Outlook(ctx)
	if err != nil {
		return err
	}
	return writeFile("weekly_outlook.csv", render.OutlookTable(outlook).CSV())
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return &t, nil
}

func writeFile(name, body string) error {
	return os.WriteFile(filepath.Join(flagCSVDir, name), []byte(body), 0o644)
}
