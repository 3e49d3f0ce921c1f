// Package cli wires the qusage command tree: the one-shot capacity
// report, the live watch view, and version information.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Joe-Costa/qumulo-usage-report/internal/config"
	"github.com/Joe-Costa/qumulo-usage-report/internal/logger"
	"github.com/Joe-Costa/qumulo-usage-report/internal/qumulo"
	"github.com/Joe-Costa/qumulo-usage-report/internal/render"
	"github.com/Joe-Costa/qumulo-usage-report/internal/report"
	"github.com/Joe-Costa/qumulo-usage-report/internal/version"
)

// reportFlags collects the string-typed flag values that need parsing
// before they land in the config.
type reportFlags struct {
	start   string
	end     string
	hourly  bool
	daily   bool
	weekly  bool
	monthly bool
	debug   bool
}

// NewRootCmd builds the qusage command tree. Env vars and .env files
// provide flag defaults; flags win.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "qusage",
		Short: "Report storage capacity usage history for a Qumulo cluster",
		Long: `qusage fetches capacity-history samples from a cluster's analytics API
for a date window and prints a usage summary plus per-period records,
optionally aggregated by hour, day, week or month.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDebug(flags.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyReportFlags(cfg, &flags); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runReport(cmd, cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfg.Host, "host", cfg.Host, "cluster host name or address")
	pf.IntVar(&cfg.Port, "port", cfg.Port, "cluster REST API port")
	pf.StringVar(&cfg.Token, "access-token", cfg.Token, "bearer access token")
	pf.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "file containing the bearer access token")
	pf.BoolVar(&cfg.InsecureTLS, "insecure", false,
		"skip TLS certificate verification (needed for self-signed cluster certs)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	f := cmd.Flags()
	f.StringVar(&flags.start, "start", "", "window start date (e.g. 2024-01-01)")
	f.StringVar(&flags.end, "end", "", "window end date (e.g. 2024-02-01)")
	f.BoolVar(&flags.hourly, "hourly", false, "aggregate by calendar hour")
	f.BoolVar(&flags.daily, "daily", false, "aggregate by calendar day")
	f.BoolVar(&flags.weekly, "weekly", false, "aggregate by week (Monday start)")
	f.BoolVar(&flags.monthly, "monthly", false, "aggregate by calendar month")
	f.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output format: text, json or csv")

	cmd.MarkFlagsMutuallyExclusive("access-token", "token-file")
	cmd.MarkFlagsMutuallyExclusive("hourly", "daily", "weekly", "monthly")

	cmd.AddCommand(newWatchCmd(cfg))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// applyReportFlags parses dates and the granularity switches into cfg.
func applyReportFlags(cfg *config.Config, flags *reportFlags) error {
	if flags.start != "" {
		start, err := config.ParseDate(flags.start)
		if err != nil {
			return err
		}
		cfg.Start = start
	}
	if flags.end != "" {
		end, err := config.ParseDate(flags.end)
		if err != nil {
			return err
		}
		cfg.End = end
	}

	g, err := config.ResolveGranularity(flags.hourly, flags.daily, flags.weekly, flags.monthly)
	if err != nil {
		return err
	}
	cfg.Granularity = g
	return nil
}

// runReport performs the single fetch and writes the report.
func runReport(cmd *cobra.Command, cfg *config.Config) error {
	token, err := cfg.ResolveToken()
	if err != nil {
		return err
	}

	var opts []qumulo.Option
	if cfg.InsecureTLS {
		opts = append(opts, qumulo.WithInsecureTLS())
	}
	client := qumulo.New(cfg.Host, cfg.Port, token, opts...)

	logger.Debug("fetching capacity history",
		"host", cfg.Host, "start", cfg.Start, "end", cfg.End)

	samples, err := client.CapacityHistory(cmd.Context(), cfg.Start, cfg.End)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(samples) == 0 {
		render.Notice(out, "No data points found in the requested range.")
		return nil
	}

	// The summary always reflects the raw series, whatever aggregation
	// the records use.
	stats, err := report.Summarize(samples)
	if err != nil {
		return err
	}
	records, err := report.Aggregate(samples, cfg.Granularity)
	if err != nil {
		return err
	}

	switch cfg.Output {
	case config.OutputJSON:
		return render.JSON(out, records)
	case config.OutputCSV:
		return render.CSV(out, records)
	default:
		render.Summary(out, cfg.Host, stats)
		render.Table(out, records)
		return nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}
