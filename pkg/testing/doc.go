// Package testing provides helpers for testing code built on reactive
// collections.
//
// # Recording Events
//
// Record subscribes to a collection and keeps everything it announces:
//
//	func TestTodoList(t *testing.T) {
//	    todos := collections.NewList[string]()
//	    rec := reactivetest.Record[string](todos)
//	    t.Cleanup(rec.Stop)
//
//	    todos.Add("write tests")
//
//	    if got := rec.Transcript(); got != "add@0 [write tests]\n" {
//	        t.Errorf("unexpected events:\n%s", got)
//	    }
//	}
//
// # Checking Projections
//
// CheckProjection verifies that a projection still matches its source after
// any sequence of source changes:
//
//	reactivetest.CheckProjection(t, source, projection, reactivetest.Expect[*Todo, string]{
//	    Selector: func(t *Todo) string { return t.Title },
//	    Filter:   func(t *Todo) bool { return !t.Done },
//	})
package testing
