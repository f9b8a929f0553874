package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nyaysathi.in/web/internal/catalog"
	"nyaysathi.in/web/internal/config"
	"nyaysathi.in/web/internal/observability"
	"nyaysathi.in/web/internal/views"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// serveFlags override the matching configuration values when set.
type serveFlags struct {
	envFile   string
	addr      string
	templates string
	public    string
	locales   string
	dev       bool
}

func newRootCmd() *cobra.Command {
	var flags serveFlags
	root := &cobra.Command{
		Use:          "nyaysathi-web",
		Short:        "NyaySathiAI legal assistant web front-end",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with local overrides")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	for _, c := range []*cobra.Command{root, serve} {
		c.Flags().StringVar(&flags.addr, "addr", "", "HTTP listen address (default from NYAYSATHI_WEB_PORT or PORT)")
		c.Flags().StringVar(&flags.templates, "templates", "", "templates directory")
		c.Flags().StringVar(&flags.public, "public", "", "public assets directory")
		c.Flags().StringVar(&flags.locales, "locales", "", "locale files directory")
		c.Flags().BoolVar(&flags.dev, "dev", false, "reparse templates on every request")
	}

	root.AddCommand(serve, newCatalogCmd())
	return root
}

func loadConfig(cmd *cobra.Command, flags serveFlags) (config.Config, error) {
	cfg, err := config.Load(cmd.Context(), config.WithEnvFile(flags.envFile))
	if err != nil {
		return config.Config{}, err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.templates != "" {
		cfg.Web.TemplatesDir = flags.templates
	}
	if flags.public != "" {
		cfg.Web.PublicDir = flags.public
	}
	if flags.locales != "" {
		cfg.Web.LocalesDir = flags.locales
	}
	if cmd.Flags().Changed("dev") {
		cfg.Web.DevMode = flags.dev
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, flags serveFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Web.DevMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger, appOptions{})
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go a.runSweeper(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverLogger := logger.Named("http").With(zap.String("addr", srv.Addr))
	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("nyaysathi web listening",
			zap.Bool("dev_mode", cfg.Web.DevMode),
			zap.String("send_policy", string(cfg.Chat.SendPolicy)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			serverLogger.Error("http server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func newCatalogCmd() *cobra.Command {
	var (
		query    string
		category string
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List legal templates matching a search and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := catalog.NormalizeCategory(category)
			if !catalog.KnownCategory(cat) {
				return fmt.Errorf("unknown category %q", category)
			}
			return writeCatalog(cmd.OutOrStdout(), catalog.Default().Search(query, cat))
		},
	}
	cmd.Flags().StringVar(&query, "q", "", "search term matched against title, description and tags")
	cmd.Flags().StringVar(&category, "category", "all", "category id")
	return cmd
}

func writeCatalog(out io.Writer, items []catalog.Template) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tLANGUAGE\tRATING\tDOWNLOADS")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			t.ID, t.Title, t.Category, views.LanguageBadge(t.Language),
			strconv.FormatFloat(t.Rating, 'f', 1, 64), t.Downloads)
	}
	return tw.Flush()
}
