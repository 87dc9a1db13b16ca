// Package localstore persists client-local state (cart, order history,
// identity keys) as JSON-encoded string values under well-known keys.
// Backends are interchangeable so pages and tests can inject their own.
package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marketfoods/storefront/pkg/config"
)

// Store is the key/value contract shared by every backend. Values are
// opaque strings; callers layer their own JSON encoding on top.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Notifier is implemented by backends that can report state changes,
// the analog of the browser storage event. Callbacks fire on any key
// change, including the caller's own writes.
type Notifier interface {
	Subscribe(fn func()) (cancel func(), err error)
}

// Open builds the store selected by cfg.
func Open(ctx context.Context, cfg config.StateConfig) (Store, error) {
	switch cfg.Driver {
	case config.StateDriverMemory:
		return NewMemory(), nil
	case config.StateDriverFile:
		path := cfg.Path
		if path == "" {
			defaultPath, err := defaultStatePath()
			if err != nil {
				return nil, err
			}
			path = defaultPath
		}
		return NewFile(path)
	case config.StateDriverSQLite:
		path := cfg.Path
		if path == "" {
			defaultPath, err := defaultStatePath()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(filepath.Dir(defaultPath), "state.db")
		}
		return OpenSQLite(path)
	case config.StateDriverPostgres:
		return OpenPostgres(cfg.DSN)
	case config.StateDriverRedis:
		return NewRedis(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown state driver %q", cfg.Driver)
	}
}

func defaultStatePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "storefront", "state.json"), nil
}
