package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/tienda-online/storefront/internal/config"
	"github.com/tienda-online/storefront/internal/logger"
	"github.com/tienda-online/storefront/internal/metrics"
	"github.com/tienda-online/storefront/internal/ui/server"
	"github.com/tienda-online/storefront/internal/version"
)

func main() {
	// Set up graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by every command, populated by the root command's PersistentPreRunE
type app struct {
	apiBaseURL string
	email      string
	password   string
	quiet      bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront api client",
		Long: `Command line client and web UI for the storefront API.

Each api command makes one call and prints the JSON response. The session cookie only lives for the
duration of the command, use --email and --password to log in first.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}
	cmd.Version = version.Get().String()

	cmd.PersistentFlags().StringVar(&a.apiBaseURL, "api-base-url", "", "storefront API base URL (overrides API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&a.email, "email", "", "log in with this email before running the command")
	cmd.PersistentFlags().StringVar(&a.password, "password", "", "password used with --email")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "do not log")

	cmd.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.meCmd(),
		a.logoutCmd(),
		a.usersCmd(),
		a.productsCmd(),
		a.cartCmd(),
		a.checkoutCmd(),
		a.ordersCmd(),
		a.uiCmd(),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("api-base-url") {
		if err := config.ValidateAPIBaseURL(a.apiBaseURL); err != nil {
			return err
		}
		cfg.APIBaseURL = strings.TrimRight(a.apiBaseURL, "/")
	}

	if a.email != "" && a.password == "" {
		return fmt.Errorf("--password is required with --email")
	}

	a.cfg = cfg
	if a.quiet {
		a.logger = logger.Discard()
	} else {
		a.logger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	}
	return nil
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the storefront web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI(cmd.Context())
		},
	}
}

func (a *app) runUI(ctx context.Context) error {
	a.logger.Info("Starting UI server", slog.String("version", version.Get().Version))

	s, err := server.NewServer(a.cfg, a.logger, metrics.New(), clockwork.NewRealClock())
	if err != nil {
		a.logger.Error("Failed to create UI server", slog.String("error", err.Error()))
		return err
	}

	if err := s.Start(ctx); err != nil {
		a.logger.Error("UI server error", slog.String("error", err.Error()))
		return err
	}

	a.logger.Info("UI server shutdown complete")
	return nil
}
