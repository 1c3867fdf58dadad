// Package partition deterministically splits frame indices across workers.
package partition

// Split distributes the indices 0..n-1 over p queues: queue q receives
// every index i with i%p == q, in ascending order. The result is a total
// partition and a pure function of (n, p), so a phase result can always be
// reassembled into canonical order regardless of worker scheduling.
//
// Queues may be empty when p > n. p values below 1 are treated as 1;
// configuration validation rejects them before a pipeline ever runs.
func Split(n, p int) [][]int {
	if p < 1 {
		p = 1
	}

	queues := make([][]int, p)
	for q := range queues {
		size := n / p
		if q < n%p {
			size++
		}
		queues[q] = make([]int, 0, size)
	}

	for i := 0; i < n; i++ {
		queues[i%p] = append(queues[i%p], i)
	}

	return queues
}
