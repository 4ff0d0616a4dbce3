package discovery

import (
	"github.com/goliatone/go-discovery/pkg/types"
	"github.com/goliatone/go-discovery/registry"
	"github.com/goliatone/go-discovery/service"
)

// Re-export the registry and service entry points so consumers can do
// `discovery.Register(...)` without importing the wiring packages.
type (
	Registry          = registry.Discovery
	RepositoryInvoker = types.RepositoryInvoker
	Service           = service.Service
	Config            = service.Config
	Commands          = service.Commands
	Queries           = service.Queries
)

// Instance returns the process-wide registry.
func Instance() *Registry {
	return registry.Instance()
}

// Register binds inv to key on the process-wide registry. It reports false
// when key is already bound; the original binding is kept.
func Register(key string, inv RepositoryInvoker) bool {
	return registry.Register(key, inv)
}

// Lookup returns the invoker bound to key on the process-wide registry.
func Lookup(key string) (RepositoryInvoker, bool) {
	return registry.Lookup(key)
}

// New constructs the go-discovery runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}
