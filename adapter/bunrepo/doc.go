// Package bunrepo adapts go-repository-bun repositories to the invoker
// contract. Reads go through the repository directly; create, update, and
// delete run on the bun.IDB handle supplied by the caller, usually the bun.Tx
// opened by TxRunner.
package bunrepo
