package gui

// CommandSink accepts console lines produced by clicks and hotkeys.
type CommandSink interface {
	EnqueueCommand(line string)
}

// commandQueue buffers generated console lines until the next frame runs
// them, so drawing code never mutates the build directly.
type commandQueue struct {
	ch chan string
}

func newCommandQueue(size int) *commandQueue {
	if size < 1 {
		size = 16
	}
	return &commandQueue{ch: make(chan string, size)}
}

func (q *commandQueue) EnqueueCommand(line string) {
	if q == nil || line == "" {
		return
	}
	select {
	case q.ch <- line:
	default:
		// Saturated: a burst of clicks within one frame, safe to drop.
	}
}

func (q *commandQueue) Dequeue() (string, bool) {
	if q == nil {
		return "", false
	}
	select {
	case line := <-q.ch:
		return line, true
	default:
		return "", false
	}
}
