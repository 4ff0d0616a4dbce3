package activity

import (
	"context"
	"fmt"

	"github.com/goliatone/go-discovery/pkg/types"
)

// Hooks returns hooks that journal registrations and transactions into sink
// before delegating to next. Sink failures are logged and never surface to the
// operation that triggered them.
func Hooks(sink types.ActivitySink, next types.Hooks, logger types.Logger) types.Hooks {
	if sink == nil {
		return next
	}
	if logger == nil {
		logger = types.NopLogger{}
	}
	return types.Hooks{
		AfterRegister: func(ctx context.Context, event types.RegistrationEvent) {
			record := RegistrationRecord(event)
			if err := sink.Log(ctx, record); err != nil {
				logger.Error("activity log failed", err, "verb", record.Verb, "key", record.Key)
			}
			if next.AfterRegister != nil {
				next.AfterRegister(ctx, event)
			}
		},
		AfterTransact: func(ctx context.Context, event types.TransactEvent) {
			record := TransactRecord(event)
			if err := sink.Log(ctx, record); err != nil {
				logger.Error("activity log failed", err, "verb", record.Verb, "key", record.Key)
			}
			if next.AfterTransact != nil {
				next.AfterTransact(ctx, event)
			}
		},
	}
}

// RegistrationRecord converts a registration event into an activity record.
func RegistrationRecord(event types.RegistrationEvent) types.ActivityRecord {
	return types.ActivityRecord{
		Verb: types.ActivityVerbRegistered,
		Key:  event.Key,
		Data: map[string]any{
			"invoker": fmt.Sprintf("%T", event.Invoker),
		},
		OccurredAt: event.OccurredAt,
	}
}

// TransactRecord converts a committed transaction event into an activity record.
// The event ID becomes the record ID so replays stay idempotent.
func TransactRecord(event types.TransactEvent) types.ActivityRecord {
	data := map[string]any{}
	if event.Query != nil {
		data["query"] = fmt.Sprintf("%T", event.Query)
	}
	if event.Result != nil {
		data["result"] = fmt.Sprintf("%T", event.Result)
	}
	return types.ActivityRecord{
		ID:         event.ID,
		Verb:       types.ActivityVerbTransacted,
		Key:        event.Key,
		Method:     event.Method,
		Data:       data,
		OccurredAt: event.OccurredAt,
	}
}
