package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sgdraw/pkg/api"
	"github.com/matzehuels/sgdraw/pkg/cache"
	"github.com/matzehuels/sgdraw/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// serveParams carries the serve command flags.
type serveParams struct {
	addr      string
	mongoURI  string
	mongoDB   string
	redisAddr string
	noCache   bool
}

// serveCommand creates the serve command for running the layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var p serveParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The server accepts graph uploads, computes layouts asynchronously, and
serves the resulting documents and rendered SVGs. Without --mongo-uri
jobs are kept in memory and lost on restart; without --redis-addr the
local file cache is used.

Metrics are exposed at /metrics in Prometheus format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyServerConfig(cfg.Server, &p)
			cc := cfg.Cache
			if p.noCache {
				cc.Disabled = true
			}
			return c.runServe(cmd.Context(), p, cc)
		},
	}

	cmd.Flags().StringVar(&p.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&p.mongoURI, "mongo-uri", "", "MongoDB connection string for persistent jobs")
	cmd.Flags().StringVar(&p.mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&p.redisAddr, "redis-addr", "", "Redis address for the shared cache")
	cmd.Flags().BoolVar(&p.noCache, "no-cache", false, "disable caching")

	return cmd
}

// applyServerConfig fills unset serve flags from the config file.
func applyServerConfig(cfg ServerConfig, p *serveParams) {
	if p.addr == "" {
		p.addr = cfg.Addr
	}
	if p.mongoURI == "" {
		p.mongoURI = cfg.MongoURI
	}
	if p.mongoDB == "" {
		p.mongoDB = cfg.MongoDatabase
	}
	if p.redisAddr == "" {
		p.redisAddr = cfg.RedisAddr
	}
}

// runServe assembles the server's store and cache and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, p serveParams, cc CacheConfig) error {
	layouts, closeStore, err := c.newStore(ctx, p)
	if err != nil {
		return err
	}
	defer closeStore()

	serveCache, err := newServeCache(ctx, p, cc)
	if err != nil {
		return err
	}
	defer serveCache.Close()

	srv := api.NewServer(api.Config{
		Addr:   p.addr,
		Store:  layouts,
		Cache:  serveCache,
		Logger: c.Logger,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// newStore picks the layout store for the server. The returned closer
// disconnects MongoDB when one is in use.
func (c *CLI) newStore(ctx context.Context, p serveParams) (store.LayoutStore, func(), error) {
	if p.mongoURI == "" {
		c.Logger.Info("using in-memory layout store")
		return store.NewMemory(), func() {}, nil
	}
	m, err := store.NewMongo(ctx, p.mongoURI, p.mongoDB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	closer := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := m.Close(closeCtx); err != nil {
			c.Logger.Warn("close mongodb", "error", err)
		}
	}
	c.Logger.Info("using mongodb layout store")
	return m, closer, nil
}

// newServeCache picks the cache backend for the server. Disabling the
// cache wins over a configured redis address.
func newServeCache(ctx context.Context, p serveParams, cc CacheConfig) (cache.Cache, error) {
	if cc.Disabled {
		if p.redisAddr != "" {
			printWarning("Caching disabled, ignoring redis address %s", p.redisAddr)
		}
		return cache.NewNullCache(), nil
	}
	if p.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, p.redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	}
	return newCache(cc)
}
