// Package main is the entry point for the spatial workspace backend.
//
// The server keeps an in-memory workspace of typed visualization windows
// and persists it to and from nbformat v4 notebook documents.
//
// The server provides:
//   - REST API for window management and the workspace codec
//   - WebSocket streaming of restore progress
//   - Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	./server -port 8000
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
