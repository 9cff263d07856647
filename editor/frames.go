package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const frameInterval = time.Second / 60

type frameMsg struct{ id int }

type frameTask struct {
	seq int
	fn  func()
}

// frameQueue is the resize.FrameScheduler of one editor. Callbacks queued
// during an update run on the next frame tick.
type frameQueue struct {
	seq     int
	tasks   []frameTask
	ticking bool
}

func (q *frameQueue) RequestFrame(fn func()) (cancel func()) {
	q.seq++
	seq := q.seq
	q.tasks = append(q.tasks, frameTask{seq: seq, fn: fn})
	return func() {
		for i, t := range q.tasks {
			if t.seq == seq {
				q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
				return
			}
		}
	}
}

func (q *frameQueue) pending() bool { return len(q.tasks) > 0 }

// flush runs the callbacks queued before the call. Callbacks may queue more
// work for the following frame.
func (q *frameQueue) flush() int {
	tasks := q.tasks
	q.tasks = nil
	for _, t := range tasks {
		t.fn()
	}
	return len(tasks)
}

func (m *Model) frameCmd() tea.Cmd {
	if !m.frames.pending() || m.frames.ticking {
		return nil
	}
	m.frames.ticking = true
	id := m.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{id: id} })
}
