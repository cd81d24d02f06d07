// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"sync"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/riptidedev/riptide/dom"
	"github.com/riptidedev/riptide/util"
)

// Root owns one container's tree: the cached previous root vnode, the
// render queue, the task loop, and the event-delegation table.
type Root struct {
	container dom.Element
	doc       dom.Document
	vnode     *VNode
	loop      *taskLoop
	listeners map[dom.Element]map[string]any

	// serializes diff/commit work across goroutines
	mu sync.Mutex

	queueLock   sync.Mutex
	renderQueue *binaryheap.Heap // renderItem, shallow-first
	queued      map[*Instance]bool
	scheduled   bool
	seq         int
}

type renderItem struct {
	inst  *Instance
	depth int
	seq   int
}

// parents drain first; ties break by insertion order
func renderItemComparator(aArg, bArg any) int {
	a := aArg.(renderItem)
	b := bArg.(renderItem)
	if a.depth != b.depth {
		return a.depth - b.depth
	}
	return a.seq - b.seq
}

type rootConfig struct {
	manual bool
	frame  FrameScheduler
}

// RootOption configures a Root at creation.
type RootOption func(*rootConfig)

// WithManualScheduling makes the root's task loop run nothing until
// Flush is called. Tests use this for deterministic turn boundaries.
func WithManualScheduling() RootOption {
	return func(cfg *rootConfig) {
		cfg.manual = true
	}
}

// WithFrameScheduler installs the host's frame callback for post-paint
// effect timing. The fallback timer still runs alongside it and fires the
// post-paint work if the host callback has not within FrameFallbackDelay.
func WithFrameScheduler(frame FrameScheduler) RootOption {
	return func(cfg *rootConfig) {
		cfg.frame = frame
	}
}

var rootsLock sync.Mutex
var roots = make(map[dom.Element]*Root)

// NewRoot returns the root bound to container, creating it on first use.
// Options apply only at creation.
func NewRoot(container dom.Element, opts ...RootOption) *Root {
	rootsLock.Lock()
	defer rootsLock.Unlock()
	if existing, ok := roots[container]; ok {
		return existing
	}
	var cfg rootConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &Root{
		container:   container,
		doc:         container.OwnerDocument(),
		loop:        newTaskLoop(cfg.manual, cfg.frame),
		renderQueue: binaryheap.NewWith(renderItemComparator),
		queued:      make(map[*Instance]bool),
	}
	roots[container] = r
	return r
}

// Render mounts, updates, or (with a nil vnode) unmounts a tree in
// container. The diff and layout effects complete synchronously before
// it returns; post-paint effects fire after the next frame.
func Render(elem *VNode, container dom.Element) *Root {
	root := NewRoot(container)
	root.Render(elem)
	return root
}

// Hydrate is identical to Render in this engine: server markup is
// treated as a fresh render.
func Hydrate(elem *VNode, container dom.Element) *Root {
	return Render(elem, container)
}

// Container returns the element this root renders into.
func (r *Root) Container() dom.Element {
	return r.container
}

// VNode returns the root wrapper vnode of the most recent render.
func (r *Root) VNode() *VNode {
	return r.vnode
}

// Render diffs elem against the root's previous tree. A nil elem
// unmounts everything and clears the cached root.
func (r *Root) Render(elem *VNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oldRoot := r.vnode
	if elem == nil {
		if oldRoot != nil {
			if Options.Root != nil {
				Options.Root(nil, r.container)
			}
			// the wrapper's dom is the container itself, which stays;
			// clearing it lets the children detach individually
			oldRoot.dom = nil
			r.unmountVNode(oldRoot, false)
			r.vnode = nil
		}
		return
	}
	// the root wraps the tree in a Fragment so it has a stable type; its
	// dom is the container, which terminates the scheduler's ancestor
	// walk
	rootVNode := H(Fragment, nil, elem)
	rootVNode.dom = r.container
	if Options.Root != nil {
		Options.Root(rootVNode, r.container)
	}
	ns := ""
	if r.container.NamespaceURI() == dom.SVGNamespaceURI {
		ns = dom.SVGNamespaceURI
	}
	var commitQueue []*Instance
	var refQueue []refEntry
	r.diff(r.container, rootVNode, oldRoot, ns, &commitQueue, r.container.FirstChild(), &refQueue)
	r.vnode = rootVNode
	r.commitRoot(commitQueue, rootVNode, refQueue)
}

// Flush synchronously drains pending re-renders and effects. Only
// meaningful with WithManualScheduling.
func (r *Root) Flush() {
	r.loop.Flush()
}

// FlushMicrotasks drains pending re-renders but leaves post-paint
// effects queued.
func (r *Root) FlushMicrotasks() {
	r.loop.FlushMicrotasks()
}

// enqueueRender queues a component for re-render on the next microtask
// turn. Repeated state updates in one turn coalesce into a single entry.
func (r *Root) enqueueRender(inst *Instance) {
	r.queueLock.Lock()
	if r.queued[inst] {
		r.queueLock.Unlock()
		return
	}
	r.queued[inst] = true
	depth := 0
	if inst.vnode != nil {
		depth = inst.vnode.depth
	}
	r.seq++
	r.renderQueue.Push(renderItem{inst: inst, depth: depth, seq: r.seq})
	needSchedule := !r.scheduled
	r.scheduled = true
	r.queueLock.Unlock()
	if needSchedule {
		r.loop.Post(r.drainRenderQueue)
	}
}

// dequeueRender drops a queued component; invoked when the tree diff
// reaches it through its parent, so the queued entry is subsumed.
func (r *Root) dequeueRender(inst *Instance) {
	r.queueLock.Lock()
	delete(r.queued, inst)
	r.queueLock.Unlock()
}

func (r *Root) drainRenderQueue() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		r.queueLock.Lock()
		itemAny, ok := r.renderQueue.Pop()
		if !ok {
			r.scheduled = false
			r.queueLock.Unlock()
			return
		}
		item := itemAny.(renderItem)
		if !r.queued[item.inst] {
			r.queueLock.Unlock()
			continue
		}
		delete(r.queued, item.inst)
		r.queueLock.Unlock()
		if item.inst.vnode == nil {
			// unmounted while queued
			continue
		}
		r.renderComponent(item.inst)
	}
}

// renderComponent is the scheduler's re-entry path for one component
// whose state changed.
func (r *Root) renderComponent(inst *Instance) {
	v := inst.vnode
	if v == nil {
		return
	}
	parentDom := r.findParentDom(v)
	if parentDom == nil {
		return
	}
	ns := ""
	if el, ok := parentDom.(dom.Element); ok && el.NamespaceURI() == dom.SVGNamespaceURI {
		ns = dom.SVGNamespaceURI
	}
	if Options.BeforeRender != nil {
		Options.BeforeRender(v)
	}
	rc := &renderContext{root: r, comp: inst}
	result := withGlobalRenderContext(rc, func() any {
		return v.Component(v.Props)
	})
	oldKids := v.kids
	oldDom := firstDom(v)
	var commitQueue []*Instance
	var refQueue []refEntry
	r.diffChildren(parentDom, result, v, oldKids, ns, &commitQueue, oldDom, &refQueue)
	if len(inst.pendingEffects) > 0 || len(inst.pendingLayoutEffects) > 0 {
		commitQueue = append(commitQueue, inst)
	}
	r.commitRoot(commitQueue, v, refQueue)
}

// findParentDom walks the parent chain to the nearest document node a
// re-render mutates under. Portals redirect the walk to their container.
func (r *Root) findParentDom(v *VNode) dom.Node {
	for p := v.parent; p != nil; p = p.parent {
		if p.isPortal() {
			container, _ := p.Props[PortalContainerPropKey].(dom.Element)
			return container
		}
		if p.dom != nil {
			return p.dom
		}
	}
	return nil
}

// commitRoot applies queued refs, runs layout effects synchronously in
// commit-queue order, and schedules post-paint effects.
func (r *Root) commitRoot(commitQueue []*Instance, rootVNode *VNode, refQueue []refEntry) {
	for _, entry := range refQueue {
		if entry.oldRef != nil && !util.SameValue(entry.oldRef, entry.ref) {
			applyRefValue(entry.oldRef, nil)
		}
		if entry.ref != nil {
			applyRefValue(entry.ref, entry.target)
		}
	}
	var postPaint []*Instance
	for _, inst := range commitQueue {
		r.runLayoutEffects(inst)
		if len(inst.pendingEffects) > 0 {
			postPaint = append(postPaint, inst)
		}
	}
	if len(postPaint) > 0 {
		r.loop.PostFrame(func() {
			r.runPostPaintEffects(postPaint)
		})
	}
	if Options.Commit != nil {
		Options.Commit(rootVNode, commitQueue)
	}
}

func (r *Root) runLayoutEffects(inst *Instance) {
	effects := inst.pendingLayoutEffects
	inst.pendingLayoutEffects = nil
	if inst.vnode == nil {
		return
	}
	for _, hook := range effects {
		runEffectSlot(hook)
	}
}

func (r *Root) runPostPaintEffects(insts []*Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inst := range insts {
		effects := inst.pendingEffects
		inst.pendingEffects = nil
		if inst.vnode == nil {
			// unmounted between commit and paint
			continue
		}
		for _, hook := range effects {
			runEffectSlot(hook)
		}
	}
}

// runEffectSlot runs one pending effect: prior cleanup first, then the
// new callback, whose return value becomes the next cleanup. Pending
// deps are accepted at this point.
func runEffectSlot(hook *Hook) {
	if !hook.hasPending {
		return
	}
	fn := hook.pendingFn
	deps := hook.pendingDeps
	hook.pendingFn = nil
	hook.pendingDeps = nil
	hook.hasPending = false
	if hook.UnmountFn != nil {
		cleanup := hook.UnmountFn
		hook.UnmountFn = nil
		cleanup()
	}
	hook.Fn = fn
	hook.Deps = deps
	if fn != nil {
		hook.UnmountFn = fn()
	}
}
