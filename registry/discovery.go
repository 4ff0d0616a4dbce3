package registry

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-discovery/pkg/types"
)

// Discovery maps resource keys to repository invokers. Bindings are
// insert-if-absent: once a key is bound it keeps its invoker for the life of
// the registry. The mapping is never enumerated. The zero value is an empty
// registry ready for use.
type Discovery struct {
	mu      sync.RWMutex
	entries map[string]types.RepositoryInvoker

	clock  types.Clock
	hooks  types.Hooks
	logger types.Logger
}

// Option customizes registry behaviour.
type Option func(*Discovery)

// WithLogger sets the logger used for debug output.
func WithLogger(logger types.Logger) Option {
	return func(d *Discovery) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithHooks registers callbacks fired after a successful registration.
func WithHooks(hooks types.Hooks) Option {
	return func(d *Discovery) {
		d.hooks = hooks
	}
}

// WithClock overrides the clock used to stamp registration events.
func WithClock(clock types.Clock) Option {
	return func(d *Discovery) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// New constructs an empty registry.
func New(opts ...Option) *Discovery {
	d := &Discovery{
		entries: make(map[string]types.RepositoryInvoker),
		clock:   types.SystemClock{},
		logger:  types.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

var _ types.InvokerRegistry = (*Discovery)(nil)

// Register binds key to inv. It returns false, leaving any existing binding
// untouched, when key is already bound, empty, or inv is nil. Any non-empty
// string is a valid key.
func (d *Discovery) Register(key string, inv types.RepositoryInvoker) bool {
	logger := d.log()
	if key == "" || inv == nil {
		logger.Debug("invoker registration rejected", "key", key, "reason", "invalid")
		return false
	}

	d.mu.Lock()
	if _, exists := d.entries[key]; exists {
		d.mu.Unlock()
		logger.Debug("invoker registration rejected", "key", key, "reason", "duplicate")
		return false
	}
	if d.entries == nil {
		d.entries = make(map[string]types.RepositoryInvoker)
	}
	d.entries[key] = inv
	d.mu.Unlock()

	logger.Debug("invoker registered", "key", key)
	if d.hooks.AfterRegister != nil {
		d.hooks.AfterRegister(context.Background(), types.RegistrationEvent{
			Key:        key,
			Invoker:    inv,
			OccurredAt: d.now(),
		})
	}
	return true
}

func (d *Discovery) log() types.Logger {
	if d.logger == nil {
		return types.NopLogger{}
	}
	return d.logger
}

func (d *Discovery) now() time.Time {
	if d.clock == nil {
		return time.Now().UTC()
	}
	return d.clock.Now()
}

// Lookup returns the invoker bound to key. The second value is false when
// nothing is bound.
func (d *Discovery) Lookup(key string) (types.RepositoryInvoker, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	inv, ok := d.entries[key]
	return inv, ok
}

// Has reports whether key is bound.
func (d *Discovery) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// LookupAs resolves key and asserts the invoker to I. It reports false when
// the key is unbound or the invoker does not implement I.
func LookupAs[I any](d *Discovery, key string) (I, bool) {
	var zero I
	if d == nil {
		return zero, false
	}
	inv, ok := d.Lookup(key)
	if !ok {
		return zero, false
	}
	typed, ok := inv.(I)
	if !ok {
		return zero, false
	}
	return typed, true
}
