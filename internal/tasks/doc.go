// Package tasks implements multi-step operations that span the upstream
// services: station discovery with batch stream validation, and play-queue
// seeding from discovery results.
//
// The core abstraction is StationEngine, which searches the station directory
// and validates candidate streams concurrently, each under its own deadline.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks
