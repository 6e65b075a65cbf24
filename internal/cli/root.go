// Package cli holds the supermarkt command line: one-shot import and
// simulation commands, the interactive menu and the long running shelf
// service.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/talkincode/supermarkt/config"
	"github.com/talkincode/supermarkt/internal/adminapi"
	"github.com/talkincode/supermarkt/internal/app"
	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/importer"
	"github.com/talkincode/supermarkt/internal/report"
)

type options struct {
	configFile string
	today      string
	seedDemo   bool
	csvFiles   []string
	sqlTable   string
	useSQL     bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "supermarkt",
		Short:         "Perishable shelf inventory and quality simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "config file (yaml)")
	pf.StringVar(&opts.today, "today", "", "simulate as if today were this date")
	pf.BoolVar(&opts.seedDemo, "demo", false, "load the demo products")

	root.AddCommand(
		newCategoriesCmd(),
		newImportCmd(opts),
		newSimulateCmd(opts),
		newMenuCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// Execute runs the root command with OS signals wired to the context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// startApp loads the configuration and initializes the application.
func startApp(opts *options) (*app.Application, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.seedDemo {
		cfg.Shelf.SeedDemo = true
	}
	a := app.NewApplication(cfg)
	if opts.today != "" {
		day, err := importer.ParseDate(opts.today)
		if err != nil {
			return nil, err
		}
		if day.IsZero() {
			return nil, errors.Errorf("invalid --today %q", opts.today)
		}
		a.SetClock(func() goods.Date { return day })
	}
	if err := a.Init(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// loadSources imports the files and table named by the flags.
func loadSources(ctx context.Context, a *app.Application, opts *options, out io.Writer) error {
	var errs error
	if len(opts.csvFiles) > 0 {
		added, err := a.ImportCSV(ctx, opts.csvFiles...)
		fmt.Fprintf(out, "Imported %d products from CSV.\n", added)
		errs = multierr.Append(errs, err)
	}
	if opts.useSQL || opts.sqlTable != "" {
		added, err := a.ImportSQL(ctx, opts.sqlTable)
		fmt.Fprintf(out, "Imported %d products from SQL.\n", added)
		errs = multierr.Append(errs, err)
	}
	return errs
}

func addSourceFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringSliceVar(&opts.csvFiles, "csv", nil, "CSV files to import")
	cmd.Flags().BoolVar(&opts.useSQL, "sql", false, "import the configured database table")
	cmd.Flags().StringVar(&opts.sqlTable, "table", "", "database table to import (implies --sql)")
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTYPE\tNAME\tRULE")
			for i, c := range goods.Categories() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, c.Category, c.Label, c.Description)
			}
			return tw.Flush()
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [csv files...]",
		Short: "Check CSV files or a database table and show the products they create",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.csvFiles = append(opts.csvFiles, args...)
			a, err := startApp(opts)
			if err != nil {
				return err
			}
			defer a.Release()
			out := cmd.OutOrStdout()
			loadErr := loadSources(cmd.Context(), a, opts, out)
			for _, e := range multierr.Errors(loadErr) {
				fmt.Fprintln(out, "Error:", e)
			}
			for _, p := range a.Inventory().List() {
				fmt.Fprintln(out, p.Describe())
			}
			return nil
		},
	}
	addSourceFlags(cmd, opts)
	return cmd
}

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		days    int
		format  string
		output  string
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate every product for a number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := startApp(opts)
			if err != nil {
				return err
			}
			defer a.Release()
			if err := loadSources(cmd.Context(), a, opts, cmd.ErrOrStderr()); err != nil {
				zap.L().Warn("some products were not imported", zap.String("namespace", "cli"), zap.Error(err))
			}
			results, err := a.Simulate(cmd.Context(), days)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return errors.Wrap(err, "create output file")
				}
				defer file.Close()
				w = file
			}
			if err := report.Write(w, f, results); err != nil {
				return err
			}
			if summary {
				return report.WriteSummary(cmd.ErrOrStderr(), report.Summarize(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 7, "number of days to simulate")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file")
	cmd.Flags().BoolVar(&summary, "summary", false, "print summary statistics to stderr")
	addSourceFlags(cmd, opts)
	return cmd
}

func newMenuCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive shelf console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := startApp(opts)
			if err != nil {
				return err
			}
			defer a.Release()
			if err := loadSources(cmd.Context(), a, opts, cmd.OutOrStdout()); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Error:", err)
			}
			return NewMenu(a, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
	addSourceFlags(cmd, opts)
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Keep the shelf live, advance it on schedule and serve the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := startApp(opts)
			if err != nil {
				return err
			}
			defer a.Release()
			if err := a.Config().InitDirs(); err != nil {
				zap.L().Warn("init dirs", zap.String("namespace", "cli"), zap.Error(err))
			}
			if err := loadSources(cmd.Context(), a, opts, cmd.OutOrStdout()); err != nil {
				zap.L().Warn("some products were not imported", zap.String("namespace", "cli"), zap.Error(err))
			}
			a.StartBackgroundJobs()
			zap.L().Info("shelf service started",
				zap.String("namespace", "cli"),
				zap.Int("products", a.Inventory().Len()),
				zap.String("advance_spec", a.Config().Shelf.AdvanceSpec))

			web := a.Config().Web
			if listen != "" {
				web.Enabled = true
			}
			if !web.Enabled {
				<-cmd.Context().Done()
				zap.L().Info("shelf service stopping", zap.String("namespace", "cli"))
				return nil
			}
			addr := web.Addr()
			if listen != "" {
				addr = listen
			}
			err = adminapi.ListenAndServe(cmd.Context(), adminapi.NewServer(a), addr)
			zap.L().Info("shelf service stopping", zap.String("namespace", "cli"))
			return err
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "admin API address (host:port), overrides the web config")
	addSourceFlags(cmd, opts)
	return cmd
}
