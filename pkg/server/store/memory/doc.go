// Package memory provides in-memory implementations of the store
// interfaces. It backs the server's dev mode and the hermetic tests;
// the enforcement semantics are identical to the GORM implementation.
package memory
