// Package memory provides an in-memory repository invoker with staged
// transactions. It backs examples and tests; it is not meant for production
// persistence.
package memory
