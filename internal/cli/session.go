package cli

import (
	"errors"
	"fmt"
	"os"

	"rentdesk/internal/api"
	"rentdesk/internal/cache"
	"rentdesk/internal/config"
	"rentdesk/internal/mutate"
	"rentdesk/internal/tui"
)

// session wires a command invocation to the remote API: config file merged
// with flags, the snapshot cache, and the mutation coordinator.
type session struct {
	cfg    *config.Config
	client *api.CachedClient
	coord  *mutate.Coordinator
}

func newSession(app *App) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if app.APIURL != "" {
		cfg.APIURL = app.APIURL
	}
	if app.Token != "" {
		cfg.Token = app.Token
	}
	if cfg.APIURL == "" {
		return nil, errors.New("api url not configured; run `rentdesk config set --api-url <url>` or pass --api-url")
	}

	c, err := api.NewClient(cfg.APIURL, cfg.Token, cfg.Timeout())
	if err != nil {
		return nil, err
	}

	store, err := openSnapshots(cfg)
	if err != nil {
		return nil, err
	}

	cc := &api.CachedClient{Client: c, Cache: store, Offline: app.Cached}
	return &session{
		cfg:    cfg,
		client: cc,
		coord:  mutate.NewCoordinator(c, store),
	}, nil
}

// openSnapshots opens the on-disk snapshot store, falling back to a
// process-local cache when the directory is unusable. Reads still work,
// they just stop surviving the process.
func openSnapshots(cfg *config.Config) (cache.Store, error) {
	dir, err := cfg.CachePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: snapshot dir unavailable (%v); caching in memory\n", err)
		return cache.NewMemory(), nil
	}
	s, err := cache.OpenSQLite(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: snapshot store unavailable (%v); caching in memory\n", err)
		return cache.NewMemory(), nil
	}
	return s, nil
}

func (s *session) TUIDeps() tui.Deps {
	return tui.Deps{
		Client:   s.client,
		Coord:    s.coord,
		PageSize: s.cfg.EffectivePageSize(),
	}
}
