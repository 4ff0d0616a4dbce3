package memory

import (
	"errors"
	"maps"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrTxDone occurs when a committed or rolled back transaction is reused.
	ErrTxDone = errors.New("memory store: transaction already finished")
	// ErrDuplicateRecord occurs when create targets an existing identifier.
	ErrDuplicateRecord = errors.New("memory store: duplicate record")
)

// Tx stages writes against a Store until Commit.
type Tx[M any] struct {
	mu      sync.Mutex
	store   *Store[M]
	writes  map[string]M
	deletes map[string]struct{}
	done    bool
}

// Commit publishes staged writes to the store.
func (tx *Tx[M]) Commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return ErrTxDone
	}
	tx.done = true

	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for id := range tx.deletes {
		delete(tx.store.records, id)
	}
	maps.Copy(tx.store.records, tx.writes)
	return nil
}

// Rollback discards staged writes.
func (tx *Tx[M]) Rollback() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.writes = nil
	tx.deletes = nil
	return nil
}

func (tx *Tx[M]) create(data M) (M, error) {
	var zero M
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return zero, ErrTxDone
	}
	id := tx.store.idOf(data)
	if id == "" && tx.store.assignID != nil {
		data = tx.store.assignID(data, tx.store.idGen.UUID().String())
		id = tx.store.idOf(data)
	}
	if id == "" {
		return zero, goerrors.New("memory store: record id required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	if _, exists := tx.lookupLocked(id); exists {
		return zero, goerrors.Wrap(ErrDuplicateRecord, goerrors.CategoryConflict, "memory store: create "+id).
			WithCode(goerrors.CodeConflict)
	}
	delete(tx.deletes, id)
	tx.writes[id] = data
	return data, nil
}

func (tx *Tx[M]) update(data M) (M, error) {
	var zero M
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return zero, ErrTxDone
	}
	id := tx.store.idOf(data)
	if _, exists := tx.lookupLocked(id); !exists {
		return zero, notFound(id)
	}
	tx.writes[id] = data
	return data, nil
}

func (tx *Tx[M]) delete(query Query[M], data M) (M, error) {
	var zero M
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return zero, ErrTxDone
	}
	id := query.ID
	if id == "" {
		id = tx.store.idOf(data)
	}
	existing, exists := tx.lookupLocked(id)
	if !exists || !query.matches(existing) {
		return zero, notFound(id)
	}
	delete(tx.writes, id)
	tx.deletes[id] = struct{}{}
	return existing, nil
}

// lookupLocked resolves id against staged writes first, then the store.
func (tx *Tx[M]) lookupLocked(id string) (M, bool) {
	var zero M
	if id == "" {
		return zero, false
	}
	if model, ok := tx.writes[id]; ok {
		return model, true
	}
	if _, deleted := tx.deletes[id]; deleted {
		return zero, false
	}
	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	model, ok := tx.store.records[id]
	return model, ok
}
