// Package store provides the optional SQLite run ledger for relabel.
//
// Each successful apply can be recorded as one row in runs plus one row in
// run_passes for every pass that replaced something. The ledger stores
// hashes and counts only, never document text:
//
//   - runs: id (UUIDv7), seq, path, table_digest, input/output SHA-256,
//     total replacements
//   - run_passes: (run_id, pass_index) → match_text, count
//
// # Ordering
//
// seq is a logical clock assigned inside the insert transaction
// (MAX(seq)+1). All listings use ORDER BY seq ASC, id ASC COLLATE BINARY so
// output is identical across reads.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: run_passes rows must reference a run
package store
