// Package command exposes go-command compatible handlers that mutate storage
// through registered repository invokers. Each handler resolves its invoker
// by key and scopes the mutation to a transaction opened by a types.TxRunner.
package command
