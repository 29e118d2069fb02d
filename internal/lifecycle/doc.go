// Package lifecycle implements creative decision tracking: the append-only
// action log, metric snapshot series, per-account learning configuration,
// retrospective outcome analysis, learning-insight mining, and rule-based
// action recommendations.
//
// The service layer contains all business logic and depends only on the
// repository interfaces defined in this package; implementations live in
// repository/postgres/. Persistence errors propagate to the caller and are
// fatal to the invoking workflow, unlike the fail-soft read heuristics in
// the analysis packages.
//
// There is intentionally no state machine constraining action sequencing
// (nothing prevents "scaled" right after "paused" for the same creative).
// The log stays a plain append-only record until explicit transition rules
// are defined.
package lifecycle
