// Package query exposes read-only go-command queriers that resolve repository
// invokers from a registry and delegate to their Get and Validate methods.
package query
