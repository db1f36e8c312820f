// Package pool computes and caches the resources metrics are built on:
// sentences, tokens, tags, parse trees. Every resource is computed at most
// once per text version while the text stays in the pool, no matter how
// many metrics ask for it.
package pool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/storage"
	"github.com/revelaction/cohmetrix/tool"
)

// DefaultCacheLimit is the number of texts whose resources are kept.
const DefaultCacheLimit = 300

var (
	// ErrCacheCorruption is returned when a stored annotation cannot be
	// decoded. The stored annotation is deleted.
	ErrCacheCorruption = errors.New("cache corruption")

	ErrUnknownKind = errors.New("unknown resource kind")
)

// ResourceError is returned when a resource of a text cannot be computed.
type ResourceError struct {
	Kind   Kind
	TextID uuid.UUID
	Err    error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s of text %s: %v", e.Kind, e.TextID, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// entry holds the resources of a text version.
type entry struct {
	mu     sync.Mutex
	values map[Kind]any
}

func (e *entry) get(k Kind) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.values[k]
	return v, ok
}

func (e *entry) set(k Kind, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[k] = v
}

// Pool is safe for concurrent use. Resources it returns are shared and
// must not be modified.
type Pool struct {
	tools   *tool.Registry
	store   storage.AnnotationStore
	logger  *slog.Logger
	timeout time.Duration
	limit   int

	mu    sync.Mutex
	cache *lru.Cache[string, *entry]

	group singleflight.Group
}

type Option func(*Pool)

// WithCacheLimit sets how many texts keep their resources. With 0, nothing
// is kept between calls.
func WithCacheLimit(n int) Option {
	return func(p *Pool) { p.limit = n }
}

// WithStore persists the tool outputs (tags, parse and dependency trees)
// in s, keyed by text version.
func WithStore(s storage.AnnotationStore) Option {
	return func(p *Pool) { p.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) { p.logger = l }
}

// WithTimeout bounds every call to an external tool. Zero means no bound
// besides the context.
func WithTimeout(d time.Duration) Option {
	return func(p *Pool) { p.timeout = d }
}

// New returns a pool computing resources with tools.
func New(tools *tool.Registry, opts ...Option) (*Pool, error) {
	if tools == nil {
		return nil, errors.New("pool: nil tool registry")
	}

	p := &Pool{
		tools:  tools,
		limit:  DefaultCacheLimit,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.limit < 0 {
		return nil, fmt.Errorf("pool: invalid cache limit %d, must be >= 0", p.limit)
	}

	if p.limit > 0 {
		cache, err := lru.New[string, *entry](p.limit)
		if err != nil {
			return nil, err
		}
		p.cache = cache
	}

	return p, nil
}

// Tools returns the registry the pool computes with.
func (p *Pool) Tools() *tool.Registry {
	return p.tools
}

// Forget drops the resources of t.
func (p *Pool) Forget(t *sent.Text) {
	if p.cache != nil {
		p.cache.Remove(t.Key())
	}
}

// Len returns the number of texts with resources in the pool.
func (p *Pool) Len() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

func (p *Pool) entry(t *sent.Text) *entry {
	if p.cache == nil {
		return &entry{values: map[Kind]any{}}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := t.Key()
	if e, ok := p.cache.Get(key); ok {
		return e
	}

	e := &entry{values: map[Kind]any{}}
	p.cache.Add(key, e)
	return e
}

// Get returns the resource kind of t, computing it on first use.
// Concurrent requests for the same resource share one computation, which
// is not canceled with the context of the caller that started it: every
// caller waits on its own context. Tool calls stay bounded by the pool
// timeout. Failed computations are not cached.
func (p *Pool) Get(ctx context.Context, t *sent.Text, kind Kind) (any, error) {
	compute, ok := resources[kind]
	if !ok {
		return nil, &ResourceError{Kind: kind, TextID: t.ID, Err: ErrUnknownKind}
	}

	e := p.entry(t)
	if v, ok := e.get(kind); ok {
		return v, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, &ResourceError{Kind: kind, TextID: t.ID, Err: err}
	}

	shared := context.WithoutCancel(ctx)
	ch := p.group.DoChan(t.Key()+"/"+string(kind), func() (any, error) {
		if v, ok := e.get(kind); ok {
			return v, nil
		}

		p.logger.Debug("computing resource", "kind", kind, "text", t.ID)

		v, err := compute(shared, p, t)
		if err != nil {
			return nil, err
		}

		e.set(kind, v)
		return v, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, &ResourceError{Kind: kind, TextID: t.ID, Err: ctx.Err()}
	case res = <-ch:
	}

	if res.Err != nil {
		var re *ResourceError
		if errors.As(res.Err, &re) {
			return nil, res.Err
		}
		return nil, &ResourceError{Kind: kind, TextID: t.ID, Err: res.Err}
	}

	return res.Val, nil
}

// toolContext bounds a tool call with the pool timeout.
func (p *Pool) toolContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return context.WithCancel(ctx)
}

// get is the typed form of Pool.Get.
func get[T any](ctx context.Context, p *Pool, t *sent.Text, kind Kind) (T, error) {
	var zero T

	v, err := p.Get(ctx, t, kind)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, &ResourceError{Kind: kind, TextID: t.ID, Err: fmt.Errorf("unexpected type %T", v)}
	}
	return typed, nil
}
