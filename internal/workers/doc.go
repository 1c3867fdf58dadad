// Package workers determines worker pool sizes for the parallel pipeline
// phases.
//
// runtime.NumCPU() reports the host CPU count even when a container limits
// the process to fewer cores; GOMAXPROCS (Go 1.19+) reflects the cgroup
// limit. The helpers here size pools from GOMAXPROCS and honor an explicit
// DEFLICKER_WORKERS environment override, so a -workers 0 default behaves
// sensibly inside and outside containers.
package workers
