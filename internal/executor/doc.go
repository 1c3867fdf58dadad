// Package executor runs a per-frame operation across a fixed pool of
// workers with barrier synchronization.
//
// The two embarrassingly parallel pipeline phases (luminance analysis and
// brightness application) go through Run. Workers receive disjoint
// deterministic queues (see internal/partition), operate on private frame
// copies with no shared mutable state, and the orchestrator blocks until
// every worker has reported before reassembling the id-ordered result.
// A failed or vanished worker fails the entire phase; consistency is
// preferred over partial output because downstream smoothing reads every
// frame.
package executor
