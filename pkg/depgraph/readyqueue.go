package depgraph

import "container/heap"

type readyItem struct {
	priority int
	name     string
}

// readyQueue is a min-heap of folders that are ready to be placed, ordered
// by priority then name so equal priorities come out alphabetically.
type readyQueue []readyItem

var _ heap.Interface = (*readyQueue)(nil)

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].name < q[j].name
}

func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *readyQueue) Push(x any) { *q = append(*q, x.(readyItem)) }

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (q *readyQueue) push(priority int, name string) {
	heap.Push(q, readyItem{priority: priority, name: name})
}

func (q *readyQueue) pop() readyItem {
	return heap.Pop(q).(readyItem)
}
