// Package invoker holds the typed side of the repository invoker contract.
//
// Adapters implement Invoker[Q, M, T] against their own query, model, and
// transaction handle types and are wrapped with Erase before registration:
//
//	repo := bunrepo.New[*Order](bunrepo.Config{DB: db})
//	discovery.Register("orders", invoker.Erase(repo))
//
// Consumers resolve the erased invoker by key and use the generic helpers to
// supply concrete shapes at the call site:
//
//	inv, ok := discovery.Lookup("orders")
//	if !ok {
//	    return nil
//	}
//	order, err := invoker.GetOne[*Order](ctx, inv, bunrepo.Query{ID: id})
package invoker
