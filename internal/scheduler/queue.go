package scheduler

import "github.com/me/rrsim/pkg/model"

// readyQueue is a FIFO of processes waiting for the CPU.
type readyQueue struct {
	items []*model.Process
}

func (q *readyQueue) push(p *model.Process) {
	q.items = append(q.items, p)
}

// pop removes and returns the head. The queue must not be empty.
func (q *readyQueue) pop() *model.Process {
	p := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return p
}

func (q *readyQueue) len() int {
	return len(q.items)
}
