// Package session coordinates safe concurrent access to persisted wizard
// positions, combining per-process reference-counted locks with an optional
// distributed locker for multi-replica deployments.
package session
