package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Makepad-fr/pizza/internal/config"
	"github.com/Makepad-fr/pizza/internal/session"
	"github.com/Makepad-fr/pizza/internal/store/jsonstore"
	"github.com/Makepad-fr/pizza/internal/store/kinto"
	"github.com/Makepad-fr/pizza/internal/store/sqlitestore"
	"github.com/Makepad-fr/pizza/pkg/logging"
)

type kvStore interface {
	session.KV
	io.Closer
}

// deps is everything a subcommand needs, built from the config.
type deps struct {
	cfg    *config.Config
	logger *slog.Logger
	kv     kvStore
	bridge *session.Bridge
	client *kinto.Client
}

func openDeps(cfg *config.Config, logOut io.Writer, color bool) (*deps, error) {
	logger := logging.Setup(logOut, logging.ParseLevel(cfg.LogLevel), color)

	var kv kvStore
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := sqlitestore.New(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("open state: %w", err)
		}
		kv = s
	default:
		kv = jsonstore.New(cfg.StateDir)
	}
	logger.Debug("state opened", "store", cfg.Store, "dir", cfg.StateDir)

	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &deps{
		cfg:    cfg,
		logger: logger,
		kv:     kv,
		bridge: session.New(kv, logger),
		client: kinto.New(httpClient, logger, cfg.Bucket, cfg.Collection),
	}, nil
}

func (d *deps) Close() error {
	return d.kv.Close()
}
