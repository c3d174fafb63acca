// Package types provides shared data structures for the workspace backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - WindowRecord: One positioned visualization panel in the workspace
//   - WindowState: Presentation state and typed payload of a window
//   - Document: Persisted cell-array snapshot of a workspace (nbformat v4)
//   - Cell: One unit of a Document (markdown note or window-bearing code)
//   - ImportResult: Outcome of decoding a Document back into windows
//
// Payload Types:
//   - ChartPayload, TablePayload, PointCloudPayload
//   - VolumePayload, Model3DPayload
//
// Error Types:
//   - CellError: Per-cell, non-fatal decode failure (accumulated in-band)
package types
