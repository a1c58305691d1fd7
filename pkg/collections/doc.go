// Package collections provides observable lists and live projections of
// them.
//
// # Lists
//
// List is an ordered sequence that announces every structural change on
// Changing and Changed, and additionally on per-item, count and reset
// streams:
//
//	todos := collections.NewList[*Todo]()
//	todos.Changed().Listen(func(ev collections.ChangeEvent[*Todo]) {
//	    view.Apply(ev)
//	})
//	todos.Add(&Todo{Title: "ship it"})
//
// Large range operations and suppression scopes collapse into a single
// Reset, which tells observers to enumerate the list again:
//
//	release := todos.SuppressChangeNotifications()
//	defer release()
//
// With ListOptions.ChangeTracking, items implementing core.PropertyNotifier
// are observed and their property changes rebroadcast on ItemChanged.
//
// # Projections
//
// Derive builds a read-only Projection that follows a source through a
// selector, an optional filter and an optional ordering. Source changes are
// applied incrementally, and per-item property changes re-evaluate the
// affected item, so after every source operation the projection equals
//
//	order(select(filter(source)))
//
// While the source suppresses notifications the projection keeps its last
// state, item changes included, and rebuilds on the closing Reset.
//
// Projections implement the same read surface as List and can be the source
// of further projections.
//
// # Threading
//
// Lists and projections are not thread-safe. Mutate them from one goroutine,
// normally the UI thread; FromChannel shows how to feed a list from a
// background goroutine through a platform.Scheduler.
package collections
