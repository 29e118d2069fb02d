// Package specs maintains a cached, versioned snapshot of platform
// creative-policy constraints and validates headlines and image URLs
// against it.
//
// The snapshot cache is process-local. Reads degrade through three tiers,
// fresh cache -> most recent persisted snapshot (even stale) -> hardcoded
// default, so Current never returns nil and never surfaces an error.
// Persisted snapshots form an append-only audit log; concurrent instances
// may race to write a fresh snapshot, which is tolerated because snapshots
// are additive.
package specs
