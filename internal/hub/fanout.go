package hub

import "sync"

// fanout is a fixed-size worker pool for delivery attempts. Pushing to N
// sessions is a loop of independent submissions, so one slow or dead peer
// only ever costs its own delivery timeout, never the sender's call.
type fanout struct {
	tasks chan func()
	wg    sync.WaitGroup
}

func newFanout(workers, queue int) *fanout {
	if workers < 1 {
		workers = 1
	}
	f := &fanout{tasks: make(chan func(), queue)}
	f.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer f.wg.Done()
			for task := range f.tasks {
				task()
			}
		}()
	}
	return f
}

// submit enqueues a delivery attempt. When the queue is saturated the task
// runs on the caller's goroutine instead: the attempt still happens and the
// per-delivery timeout still bounds how long it can take.
func (f *fanout) submit(task func()) {
	select {
	case f.tasks <- task:
	default:
		task()
	}
}

// close drains the queue and stops the workers.
func (f *fanout) close() {
	close(f.tasks)
	f.wg.Wait()
}
