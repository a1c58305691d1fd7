package platform

import (
	"testing"

	"github.com/go-drift/reactive/pkg/errors"
)

func TestImmediate_RunsSynchronously(t *testing.T) {
	ran := false
	Immediate.Schedule(func() { ran = true })
	if !ran {
		t.Error("Immediate should run the callback before returning")
	}
}

func TestDispatch_NoFunctionRegistered(t *testing.T) {
	RegisterDispatch(nil)
	if Dispatching() {
		t.Error("Dispatching should be false after unregistering")
	}
	if Dispatch(func() {}) {
		t.Error("Dispatch should report false without a registered function")
	}
}

func TestUIScheduler_UsesDispatch(t *testing.T) {
	var queued []func()
	RegisterDispatch(func(cb func()) { queued = append(queued, cb) })
	t.Cleanup(func() { RegisterDispatch(nil) })

	if !Dispatching() {
		t.Fatal("Dispatching should be true once registered")
	}
	ran := false
	UIScheduler{}.Schedule(func() { ran = true })

	if ran {
		t.Fatal("callback should wait for the dispatch loop")
	}
	if len(queued) != 1 {
		t.Fatalf("queued %d callbacks, want 1", len(queued))
	}
	queued[0]()
	if !ran {
		t.Error("callback should run when the dispatch loop drains")
	}
}

func TestUIScheduler_FallsBackToImmediate(t *testing.T) {
	RegisterDispatch(nil)
	ran := false
	UIScheduler{}.Schedule(func() { ran = true })
	if !ran {
		t.Error("UIScheduler should run immediately without a dispatch function")
	}
}

type panicCapture struct {
	panics []*errors.PanicError
}

func (p *panicCapture) HandleError(*errors.CollectionError) {}
func (p *panicCapture) HandlePanic(err *errors.PanicError)  { p.panics = append(p.panics, err) }
func (p *panicCapture) HandleWarning(*errors.Warning)       {}

func TestUIScheduler_RecoversPanics(t *testing.T) {
	SetupTestDispatch(t.Cleanup)
	capture := &panicCapture{}
	old := errors.DefaultHandler
	errors.SetHandler(capture)
	defer errors.SetHandler(old)

	UIScheduler{}.Schedule(func() { panic("listener exploded") })

	if len(capture.panics) != 1 {
		t.Fatalf("captured %d panics, want 1", len(capture.panics))
	}
	if capture.panics[0].Op != "platform.UIScheduler" {
		t.Errorf("Op = %q, want platform.UIScheduler", capture.panics[0].Op)
	}
}

func TestQueueScheduler_Drain(t *testing.T) {
	q := &QueueScheduler{}
	var order []int
	q.Schedule(func() {
		order = append(order, 1)
		q.Schedule(func() { order = append(order, 3) })
	})
	q.Schedule(func() { order = append(order, 2) })

	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
	if n := q.Drain(); n != 3 {
		t.Errorf("Drain ran %d callbacks, want 3", n)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestOr(t *testing.T) {
	if Or(nil) == nil {
		t.Error("Or(nil) should return Immediate")
	}
	q := &QueueScheduler{}
	if Or(q) != Scheduler(q) {
		t.Error("Or should return a non-nil scheduler unchanged")
	}
}
