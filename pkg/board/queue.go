package board

import (
	"context"
	"sync"
	"time"
)

// ClaimQueue holds the ids of players whose claim is complete and waiting for the dealer
// Ids are distinct and kept in the order the claims were completed.
// The dealer is the only consumer.
type ClaimQueue struct {
	lock   sync.Mutex
	ids    []int
	queued map[int]bool

	// notify has a buffer of one so an enqueue is never lost while the dealer is busy
	notify chan struct{}
}

// NewClaimQueue returns an empty queue
func NewClaimQueue() *ClaimQueue {
	return &ClaimQueue{
		queued: make(map[int]bool),
		notify: make(chan struct{}, 1),
	}
}

// Enqueue adds a player to the end of the queue
// Returns false if the player was already queued
func (q *ClaimQueue) Enqueue(id int) bool {
	q.lock.Lock()
	if q.queued[id] {
		q.lock.Unlock()
		return false
	}

	q.queued[id] = true
	q.ids = append(q.ids, id)
	q.lock.Unlock()

	q.signal()
	return true
}

func (q *ClaimQueue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Remove takes a player out of the queue without arbitration
// Returns true if the player was queued
func (q *ClaimQueue) Remove(id int) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	if !q.queued[id] {
		return false
	}

	delete(q.queued, id)
	for i, queued := range q.ids {
		if queued == id {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			break
		}
	}

	return true
}

// TryNext pops the head of the queue without blocking
func (q *ClaimQueue) TryNext() (int, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(q.ids) == 0 {
		return -1, false
	}

	id := q.ids[0]
	q.ids = q.ids[1:]
	delete(q.queued, id)

	return id, true
}

// Next pops the head of the queue, blocking until a claim arrives or the context is done
func (q *ClaimQueue) Next(ctx context.Context) (int, error) {
	for {
		if id, ok := q.TryNext(); ok {
			return id, nil
		}

		select {
		case <-q.notify:
		case <-ctx.Done():
			return -1, ctx.Err()
		}
	}
}

// Wait suspends until a claim is enqueued, the timeout passes, or the context is done
// It returns immediately if the queue is not empty. Returns true if claims are waiting.
func (q *ClaimQueue) Wait(ctx context.Context, timeout time.Duration) bool {
	if q.Len() > 0 {
		return true
	}

	if timeout <= 0 {
		return false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-q.notify:
	case <-timer.C:
	case <-ctx.Done():
	}

	return q.Len() > 0
}

// Clear removes every entry and returns the removed ids in queue order
func (q *ClaimQueue) Clear() []int {
	q.lock.Lock()
	defer q.lock.Unlock()

	ids := q.ids
	q.ids = nil
	q.queued = make(map[int]bool)

	return ids
}

// Contains returns true if the player is waiting for arbitration
func (q *ClaimQueue) Contains(id int) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.queued[id]
}

// Len returns the number of claims waiting
func (q *ClaimQueue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.ids)
}

// Pending returns a copy of the queued ids in queue order
func (q *ClaimQueue) Pending() []int {
	q.lock.Lock()
	defer q.lock.Unlock()

	ids := make([]int, len(q.ids))
	copy(ids, q.ids)
	return ids
}
