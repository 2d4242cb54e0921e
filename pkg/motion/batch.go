package motion

import "sync"

// batchContext collects deferred subscriber callbacks.
type batchContext struct {
	mu      sync.Mutex
	depth   int
	pending map[uint64]func()
	order   []uint64
}

var batch = batchContext{pending: make(map[uint64]func())}

// Batch runs fn and defers change callbacks until the outermost Batch
// returns. Callbacks run in the order their subscriptions were first
// triggered, each once with its latest value.
func Batch(fn func()) {
	batch.mu.Lock()
	batch.depth++
	batch.mu.Unlock()

	defer func() {
		batch.mu.Lock()
		batch.depth--
		var run []func()
		if batch.depth == 0 && len(batch.order) > 0 {
			run = make([]func(), 0, len(batch.order))
			for _, id := range batch.order {
				run = append(run, batch.pending[id])
			}
			batch.pending = make(map[uint64]func())
			batch.order = nil
		}
		batch.mu.Unlock()

		for _, cb := range run {
			cb()
		}
	}()

	fn()
}

// enqueue stores cb under id if a batch is open. It reports whether the
// callback was deferred.
func (b *batchContext) enqueue(id uint64, cb func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.depth == 0 {
		return false
	}
	if _, exists := b.pending[id]; !exists {
		b.order = append(b.order, id)
	}
	b.pending[id] = cb
	return true
}
