package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"bigcompany-analysis/internal/apperror"
	"bigcompany-analysis/internal/config"
	"bigcompany-analysis/internal/db"
	"bigcompany-analysis/internal/loader"
	"bigcompany-analysis/internal/report"
	"bigcompany-analysis/internal/service"
)

const (
	exitSuccess     = 0
	exitInvalidData = 1
	exitUsage       = 2
	exitInternal    = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error [%s]: %v\n", apperror.GetCode(err), err)
		return exitCode(err)
	}
	return exitSuccess
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case apperror.IsDataError(err):
		return exitInvalidData
	case apperror.GetCode(err) == apperror.CodeConfig:
		return exitUsage
	default:
		return exitInternal
	}
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var (
		cfg         config.Config
		source      string
		databaseURL string
		format      string
		port        string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "analyzer [employees.csv]",
		Short: "Report managers paid outside their band and employees with long reporting lines",
		Long: `Reads employee records (id,firstName,lastName,salary,managerId) and prints
managers whose salary is not between 1.2x and 1.5x the average salary of their
direct reports, followed by employees with more than 4 managers between them
and the CEO.`,
		Args:          maxArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded

			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.Source = strings.ToLower(strings.TrimSpace(source))
			}
			if flags.Changed("database-url") {
				cfg.DatabaseURL = databaseURL
			}
			if flags.Changed("format") {
				cfg.Format = strings.ToLower(strings.TrimSpace(format))
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if len(args) == 1 {
				cfg.FilePath = args[0]
			}
			cfg.Verbose = verbose

			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cfg, newLogger(stderr, cfg.Verbose), cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&source, "source", config.SourceCSV, "record source: csv or postgres")
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "postgres connection string (source=postgres)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	cmd.Flags().StringVar(&format, "format", config.FormatText, "output format: text or json")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperror.New(apperror.CodeConfig, err.Error())
	})

	serve := newServeCmd(&cfg, stderr)
	serve.Flags().StringVar(&port, "port", config.DefaultPort, "port to listen on")
	cmd.AddCommand(serve)

	return cmd
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return apperror.New(apperror.CodeConfig, err.Error())
		}
		return nil
	}
}

func newLogger(stderr io.Writer, verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "", log.LstdFlags)
}

func runReport(ctx context.Context, cfg config.Config, logger *log.Logger, stdout io.Writer) error {
	analyzer, closeSource, err := newAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	result, err := analyzer.Analyze(ctx)
	if err != nil {
		return err
	}
	return report.Write(stdout, cfg.Format, result)
}

func newAnalyzer(cfg config.Config, logger *log.Logger) (service.Analyzer, func(), error) {
	if cfg.Source != config.SourcePostgres {
		return service.NewAnalysisService(loader.CSVSource{Path: cfg.FilePath}, logger), func() {}, nil
	}

	database, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection error: %w", err)
	}
	closeSource := func() {
		if err := db.Close(database); err != nil {
			logger.Printf("close database: %v", err)
		}
	}
	return service.NewAnalysisService(loader.DBSource{DB: database}, logger), closeSource, nil
}
