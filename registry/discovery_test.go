package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-discovery/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_ReturnsSameRegistry(t *testing.T) {
	first := Instance()
	for range 10 {
		require.Same(t, first, Instance())
	}
}

func TestInstance_PackageHelpersShareState(t *testing.T) {
	inv := &stubInvoker{name: "instance-helpers"}

	require.True(t, Register("instance-helpers", inv))
	require.False(t, Register("instance-helpers", &stubInvoker{}))

	got, ok := Instance().Lookup("instance-helpers")
	require.True(t, ok)
	require.Same(t, inv, got)
}

func TestDiscovery_RegisterAndLookup(t *testing.T) {
	reg := New()
	a := &stubInvoker{name: "a"}
	b := &stubInvoker{name: "b"}

	require.True(t, reg.Register("orders", a))
	require.False(t, reg.Register("orders", b))

	got, ok := reg.Lookup("orders")
	require.True(t, ok)
	require.Same(t, a, got)

	missing, ok := reg.Lookup("customers")
	require.False(t, ok)
	require.Nil(t, missing)
}

func TestDiscovery_DuplicateWithSameInvokerIsRejected(t *testing.T) {
	reg := New()
	inv := &stubInvoker{}

	require.True(t, reg.Register("test-invoker", inv))
	require.False(t, reg.Register("test-invoker", inv))
	require.True(t, reg.Has("test-invoker"))
}

func TestDiscovery_RejectsInvalidInput(t *testing.T) {
	reg := New()

	assert.False(t, reg.Register("", &stubInvoker{}))
	assert.False(t, reg.Register("orders", nil))
	assert.False(t, reg.Has("orders"))
	assert.False(t, reg.Has(""))
}

func TestDiscovery_AcceptsAnyNonEmptyKey(t *testing.T) {
	reg := New()

	require.True(t, reg.Register("   ", &stubInvoker{}))
	require.True(t, reg.Register(" orders ", &stubInvoker{}))
	require.True(t, reg.Has("   "))
	require.False(t, reg.Has("orders"))
}

func TestDiscovery_ZeroValueIsUsable(t *testing.T) {
	var reg Discovery
	inv := &stubInvoker{}

	_, ok := reg.Lookup("orders")
	require.False(t, ok)
	require.True(t, reg.Register("orders", inv))
	require.False(t, reg.Register("orders", &stubInvoker{}))

	got, ok := reg.Lookup("orders")
	require.True(t, ok)
	require.Same(t, inv, got)
}

func TestDiscovery_KeysAreExact(t *testing.T) {
	reg := New()
	require.True(t, reg.Register("Orders", &stubInvoker{}))

	_, ok := reg.Lookup("orders")
	require.False(t, ok)
	require.True(t, reg.Register("orders", &stubInvoker{}))
}

func TestDiscovery_RegistrationOrderDoesNotMatter(t *testing.T) {
	a := &stubInvoker{name: "a"}
	b := &stubInvoker{name: "b"}

	forward := New()
	require.True(t, forward.Register("k1", a))
	require.True(t, forward.Register("k2", b))

	reverse := New()
	require.True(t, reverse.Register("k2", b))
	require.True(t, reverse.Register("k1", a))

	for _, key := range []string{"k1", "k2"} {
		left, ok := forward.Lookup(key)
		require.True(t, ok)
		right, ok := reverse.Lookup(key)
		require.True(t, ok)
		require.Same(t, left, right, key)
	}
}

func TestDiscovery_ConcurrentRegistrationBindsOnce(t *testing.T) {
	reg := New()
	var (
		wg      sync.WaitGroup
		wins    atomic.Int32
		winners = make([]*stubInvoker, 32)
	)
	for i := range winners {
		winners[i] = &stubInvoker{name: fmt.Sprintf("inv-%d", i)}
	}

	for _, inv := range winners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if reg.Register("shared", inv) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	got, ok := reg.Lookup("shared")
	require.True(t, ok)
	require.Contains(t, winners, got)
}

func TestDiscovery_AfterRegisterHook(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var events []types.RegistrationEvent
	reg := New(
		WithClock(fixedClock{at: at}),
		WithHooks(types.Hooks{
			AfterRegister: func(_ context.Context, evt types.RegistrationEvent) {
				events = append(events, evt)
			},
		}),
	)
	inv := &stubInvoker{}

	require.True(t, reg.Register("orders", inv))
	require.False(t, reg.Register("orders", &stubInvoker{}))

	require.Len(t, events, 1)
	require.Equal(t, "orders", events[0].Key)
	require.Same(t, inv, events[0].Invoker)
	require.Equal(t, at, events[0].OccurredAt)
}

func TestDiscovery_LoggerReceivesRejections(t *testing.T) {
	logger := &recordingLogger{}
	reg := New(WithLogger(logger))

	require.True(t, reg.Register("orders", &stubInvoker{}))
	require.False(t, reg.Register("orders", &stubInvoker{}))

	require.Equal(t, []string{"invoker registered", "invoker registration rejected"}, logger.debug)
}

func TestLookupAs(t *testing.T) {
	reg := New()
	inv := &stubInvoker{name: "named"}
	require.True(t, reg.Register("orders", inv))

	named, ok := LookupAs[interface{ Name() string }](reg, "orders")
	require.True(t, ok)
	require.Equal(t, "named", named.Name())

	_, ok = LookupAs[fmt.Stringer](reg, "orders")
	require.False(t, ok)

	_, ok = LookupAs[*stubInvoker](reg, "customers")
	require.False(t, ok)

	_, ok = LookupAs[*stubInvoker](nil, "orders")
	require.False(t, ok)
}

type stubInvoker struct {
	name string
}

func (s *stubInvoker) Name() string { return s.name }

func (s *stubInvoker) Get(context.Context, any, bool) (any, error) {
	return nil, nil
}

func (s *stubInvoker) Validate(context.Context, any, func(any) bool) (bool, error) {
	return false, nil
}

func (s *stubInvoker) Transact(context.Context, string, any, any, any) (any, error) {
	return nil, nil
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

type recordingLogger struct {
	types.NopLogger
	mu    sync.Mutex
	debug []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, msg)
}
