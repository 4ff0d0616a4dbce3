package registry

import (
	"sync"

	"github.com/goliatone/go-discovery/pkg/types"
)

var (
	instance     *Discovery
	instanceOnce sync.Once
)

// Instance returns the process-wide registry, creating it on first use.
func Instance() *Discovery {
	instanceOnce.Do(func() {
		instance = New()
	})
	return instance
}

// Register binds key to inv on the process-wide registry.
func Register(key string, inv types.RepositoryInvoker) bool {
	return Instance().Register(key, inv)
}

// Lookup resolves key on the process-wide registry.
func Lookup(key string) (types.RepositoryInvoker, bool) {
	return Instance().Lookup(key)
}
