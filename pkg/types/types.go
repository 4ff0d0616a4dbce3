package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RegistrationEvent is emitted after an invoker is bound to a key.
type RegistrationEvent struct {
	Key        string
	Invoker    RepositoryInvoker
	OccurredAt time.Time
}

// TransactEvent is emitted after a transaction method completes successfully.
type TransactEvent struct {
	ID         uuid.UUID
	Key        string
	Method     string
	Query      any
	Result     any
	OccurredAt time.Time
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterRegister func(context.Context, RegistrationEvent)
	AfterTransact func(context.Context, TransactEvent)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used across the module.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}
