// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"sync"
	"time"

	"github.com/riptidedev/riptide/util"
)

// FrameFallbackDelay is how long the loop waits for post-paint work when
// the host provides no frame callback (or the frame callback never fires,
// e.g. a non-visible tab).
const FrameFallbackDelay = 35 * time.Millisecond

// FrameScheduler requests a callback after the next paint. Hosts with a
// real frame signal install one via WithFrameScheduler; the default is a
// timer at FrameFallbackDelay.
type FrameScheduler func(callback func())

// taskLoop owns the two suspension points of the engine: the microtask
// drain and the post-paint continuation. In manual mode nothing runs
// until Flush, which gives tests deterministic turn boundaries. In auto
// mode a single goroutine drains microtasks in FIFO order and frame work
// fires off the frame scheduler.
type taskLoop struct {
	mu           sync.Mutex
	micro        []func()
	frames       []func()
	manual       bool
	frame        FrameScheduler
	wakeCh       chan struct{}
	once         sync.Once
	framePending bool
}

func newTaskLoop(manual bool, frame FrameScheduler) *taskLoop {
	l := &taskLoop{manual: manual, frame: frame}
	if frame == nil {
		l.frame = func(callback func()) {
			time.AfterFunc(FrameFallbackDelay, callback)
		}
	} else {
		// the fallback timer also covers a host frame callback that never
		// fires; whichever comes first runs the frame work
		l.frame = func(callback func()) {
			var once sync.Once
			run := func() { once.Do(callback) }
			time.AfterFunc(FrameFallbackDelay, run)
			frame(run)
		}
	}
	return l
}

// Post queues fn for the next microtask turn.
func (l *taskLoop) Post(fn func()) {
	l.mu.Lock()
	l.micro = append(l.micro, fn)
	l.mu.Unlock()
	if l.manual {
		return
	}
	l.once.Do(func() {
		l.wakeCh = make(chan struct{}, 1)
		go l.drainLoop()
	})
	select {
	case l.wakeCh <- struct{}{}:
	default:
	}
}

// PostFrame queues fn for after the next paint.
func (l *taskLoop) PostFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	armed := l.framePending
	l.framePending = true
	l.mu.Unlock()
	if l.manual || armed {
		return
	}
	l.frame(l.runFrames)
}

func (l *taskLoop) drainLoop() {
	for range l.wakeCh {
		l.runMicrotasks()
	}
}

func (l *taskLoop) runMicrotasks() {
	for {
		l.mu.Lock()
		if len(l.micro) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.micro[0]
		l.micro = l.micro[1:]
		l.mu.Unlock()
		l.runTask(fn)
	}
}

func (l *taskLoop) runFrames() {
	l.mu.Lock()
	tasks := l.frames
	l.frames = nil
	l.framePending = false
	l.mu.Unlock()
	for _, fn := range tasks {
		l.runTask(fn)
	}
}

func (l *taskLoop) runTask(fn func()) {
	if l.manual {
		// manual mode propagates panics to the Flush caller
		fn()
		return
	}
	defer func() {
		util.PanicHandler("task loop", recover())
	}()
	fn()
}

// Flush synchronously drains queued microtasks, then frame work, looping
// until both queues are empty. Only meaningful in manual mode; in auto
// mode the background drainer owns the queues.
func (l *taskLoop) Flush() {
	for {
		l.mu.Lock()
		empty := len(l.micro) == 0 && len(l.frames) == 0
		l.mu.Unlock()
		if empty {
			return
		}
		l.runMicrotasks()
		l.runFrames()
	}
}

// FlushMicrotasks drains only the microtask queue, leaving post-paint
// work pending. Lets tests observe the state between a re-render and its
// effects.
func (l *taskLoop) FlushMicrotasks() {
	l.runMicrotasks()
}
