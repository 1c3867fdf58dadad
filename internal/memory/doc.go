// Package memory configures GOMEMLIMIT from container memory limits.
//
// A time-lapse batch can hold several decoded multi-megapixel frames in
// flight at once (one per worker), which easily dominates the heap. When
// the process runs under a cgroup memory limit, setting GOMEMLIMIT keeps
// the garbage collector ahead of the limit instead of letting the kernel
// OOM-kill the run mid-batch.
package memory
