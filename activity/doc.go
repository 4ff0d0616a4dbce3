// Package activity journals invoker registrations and committed transactions.
// Journal is both the sink and the read model; Hooks adapts any sink onto
// types.Hooks.
package activity
