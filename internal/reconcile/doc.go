// Package reconcile maps the engine's view of its containers onto persisted
// Worker aggregates.
//
// A pass lists every container, resolves the Worker for its image id
// (creating one when the image was never seen), maps the container's scalar
// fields from a fresh inspection, merges ports, host config, network settings
// and mounts against what the store already holds, and upserts the result.
// Failures are scoped to one container and collected into a SyncReport; only a
// failure to list containers aborts the pass.
package reconcile
