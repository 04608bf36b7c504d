package relocation

// expense is an expense seen during the scan that has not been relocated yet.
type expense struct {
	index     int
	magnitude int64
}

// expenseHeap is a max-heap of expenses ordered by magnitude.
// Ties go to the earliest expense so that plans are deterministic.
type expenseHeap []expense

func (h expenseHeap) Len() int { return len(h) }

func (h expenseHeap) Less(i, j int) bool {
	if h[i].magnitude != h[j].magnitude {
		return h[i].magnitude > h[j].magnitude
	}
	return h[i].index < h[j].index
}

func (h expenseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *expenseHeap) Push(x any) { *h = append(*h, x.(expense)) }

func (h *expenseHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
