// Package core provides the listener primitives reactive collections are
// built from.
//
// # Notifications
//
// Notifier broadcasts value-less notifications and satisfies Listenable:
//
//	refresh := core.NewNotifier()
//	unsub := refresh.AddListener(func() { reload() })
//	defer unsub()
//	refresh.Notify()
//
// Stream carries typed events to any number of listeners, synchronously and
// in emission order:
//
//	moved := core.NewStream[int]()
//	moved.Listen(func(to int) { fmt.Println("moved to", to) })
//	moved.Emit(3)
//
// # Property Change Notifications
//
// Models whose fields change in place embed Properties so that collections
// with change tracking enabled can observe them:
//
//	type item struct {
//	    core.Properties
//	    value int
//	}
//
//	func (i *item) SetValue(v int) {
//	    core.SetProperty(&i.Properties, &i.value, v, "Value")
//	}
//
// # Subscription Conventions
//
// Every subscription method returns an unsubscribe function. Long-lived
// objects that own subscriptions implement Disposable.
package core
