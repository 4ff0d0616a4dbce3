// Package registry contains the discovery registry that binds resource keys to
// repository invokers. Instance returns the process-wide registry; New builds
// isolated registries for tests or scoped hosts.
//
// Bootstrap code registers adapters once at startup and checks the result:
//
//	if !registry.Register("orders", invoker.Erase(ordersRepo)) {
//	    // "orders" was already bound; the original binding is kept.
//	}
//
// Business logic resolves them by key later:
//
//	inv, ok := registry.Lookup("orders")
package registry
