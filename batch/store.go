package batch

import (
	"fmt"
	"log/slog"

	"github.com/revelaction/cohmetrix/config"
	"github.com/revelaction/cohmetrix/pool"
	"github.com/revelaction/cohmetrix/storage"
	"github.com/revelaction/cohmetrix/storage/filesystem"
	"github.com/revelaction/cohmetrix/storage/sqlite/zombiezen"
	"github.com/revelaction/cohmetrix/tool"
)

// Store is an annotation store holding resources until closed.
type Store interface {
	storage.AnnotationStore
	Close() error
}

type nopCloser struct {
	storage.AnnotationStore
}

func (nopCloser) Close() error { return nil }

// OpenStore opens the configured annotation store. It returns nil for
// config.StoreNone.
func OpenStore(sc config.StoreConfig) (Store, error) {
	switch sc.Kind {
	case config.StoreNone, "":
		return nil, nil
	case config.StoreSqlite:
		h, err := zombiezen.OpenAnnotationHandler(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", sc.Path, err)
		}
		return h, nil
	case config.StoreFilesystem:
		s, err := filesystem.NewAnnotationStore(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("open filesystem store %s: %w", sc.Path, err)
		}
		return nopCloser{s}, nil
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", config.ErrInvalid, sc.Kind)
	}
}

// PoolsFor returns a factory of pools sharing tools and store, configured
// after cfg. A nil store disables persistence.
func PoolsFor(cfg *config.Config, tools *tool.Registry, store storage.AnnotationStore, logger *slog.Logger) PoolFactory {
	return func() (*pool.Pool, error) {
		opts := []pool.Option{
			pool.WithCacheLimit(cfg.CacheLimit),
			pool.WithTimeout(cfg.ToolTimeout),
		}
		if store != nil {
			opts = append(opts, pool.WithStore(store))
		}
		if logger != nil {
			opts = append(opts, pool.WithLogger(logger))
		}
		return pool.New(tools, opts...)
	}
}

// FromConfig builds a driver of SetFor the configured tools, with the
// configured store. The caller closes the returned store, which is nil
// when persistence is off.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Driver, Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	tools, err := tool.Default(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	// a nil Store would be a non nil interface in the pool
	var annotations storage.AnnotationStore
	if store != nil {
		annotations = store
	}

	opts := []Option{WithWorkers(cfg.Workers)}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}

	d, err := New(SetFor(tools), PoolsFor(cfg, tools, annotations, logger), opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	return d, store, nil
}
