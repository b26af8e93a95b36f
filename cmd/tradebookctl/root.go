package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/tradebook/internal/core/ports/services"
	"github.com/SscSPs/tradebook/internal/core/services"
	"github.com/SscSPs/tradebook/internal/middleware"
	"github.com/SscSPs/tradebook/internal/platform/config"
	"github.com/SscSPs/tradebook/internal/repositories/database/pgsql"
	"github.com/SscSPs/tradebook/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var version = "0.1.0"

// app carries what every subcommand needs once the persistent pre-run has resolved it.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	pool      *pgxpool.Pool
	services  *portssvc.ServiceContainer
	printer   *message.Printer
	workplace string
	locale    string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tradebookctl",
		Short: "Operate the tradebook credit ledger from the command line",
		Long: `tradebookctl runs the ledger engine directly against the configured database.

Configuration is read from the environment (and .env) exactly like the API server:
  PGSQL_URL, MIGRATIONS_PATH, OVERPAYMENT_POLICY, RECORD_LEDGER_SNAPSHOTS, SYSTEM_ACCOUNT_*`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.pool != nil {
				database.ClosePgxPool(a.pool, a.logger)
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.workplace, "workplace", "w", "", "Workplace ID")
	root.PersistentFlags().StringVar(&a.locale, "locale", "en-IN", "Locale used to group amounts")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log engine activity to stderr")

	root.AddCommand(
		newMigrateCmd(a),
		newBalanceCmd(a),
		newRefreshBalanceCmd(a),
		newStatementCmd(a),
		newCreditCheckCmd(a),
		newTrialBalanceCmd(a),
		newBalanceSheetCmd(a),
		newProfitAndLossCmd(a),
		newRecordPaymentCmd(a),
	)
	return root
}

func (a *app) setup() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	tag, err := language.Parse(a.locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", a.locale, err)
	}
	a.printer = message.NewPrinter(tag)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// newContext returns a context carrying the CLI logger so services log through it.
func (a *app) newContext() context.Context {
	return middleware.WithLogger(context.Background(), a.logger)
}

// connect opens the pool and builds the services. Only commands that touch the ledger call it.
func (a *app) connect(ctx context.Context) error {
	if a.workplace == "" {
		return fmt.Errorf("--workplace is required")
	}
	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, a.logger)
	if err != nil {
		return err
	}
	a.pool = pool

	opts, err := a.cfg.ServiceOptions()
	if err != nil {
		return err
	}
	a.services = services.NewServiceContainer(pgsql.NewTransactionStore(pool), opts...)
	return nil
}
