package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/utafrali/EcommerceGo/storefront/internal/app"
	"github.com/utafrali/EcommerceGo/storefront/internal/cart"
	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/config"
	"github.com/utafrali/EcommerceGo/storefront/internal/wishlist"
	"github.com/utafrali/EcommerceGo/storefront/pkg/logger"
)

const flushTimeout = 5 * time.Second

// session is the per-invocation state: one store, one catalog client and
// one engine of each kind, hydrated before any command touches them.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	out      *OutputFormatter
	store    *app.Store
	catalog  *catalog.Client
	cart     *cart.Engine
	wishlist *wishlist.Engine
}

// openSession loads SHOPCTL_ configuration, applies the global flags and
// opens the store. Callers must defer close.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if opts.DB != "" {
		cfg.StorageBackend = config.BackendSQLite
		cfg.SQLitePath = opts.DB
	}

	level := cfg.LogLevel
	if !opts.Verbose {
		level = "error"
	} else if level == "info" {
		level = "debug"
	}
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}
	log := logger.NewText("shopctl", level, out.GetErrWriter())

	ctx := cmd.Context()
	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "open store", err)
	}

	s := &session{
		cfg:      cfg,
		logger:   log,
		out:      out,
		store:    store,
		catalog:  app.NewCatalog(cfg, log),
		cart:     cart.NewEngine(store, cfg.StorageNamespace, log),
		wishlist: wishlist.NewEngine(store, cfg.StorageNamespace, log),
	}
	s.cart.Hydrate(ctx)
	s.wishlist.Hydrate(ctx)
	return s, nil
}

// close waits for pending writes and releases the store.
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := s.cart.Flush(ctx); err != nil {
		s.logger.Error("cart flush error", slog.String("error", err.Error()))
	}
	if err := s.wishlist.Flush(ctx); err != nil {
		s.logger.Error("wishlist flush error", slog.String("error", err.Error()))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("storage close error", slog.String("error", err.Error()))
	}
}

// withSession opens a session around run.
func withSession(opts *RootOptions, run func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, opts)
		if err != nil {
			return err
		}
		defer s.close()
		return run(cmd, s, args)
	}
}
