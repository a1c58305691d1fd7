package core

// PropertyChange describes a change to one named property of an object.
type PropertyChange struct {
	Property string
}

// PropertyNotifier is implemented by objects that announce property changes
// after they happen. Collections with change tracking enabled subscribe to
// items implementing it.
type PropertyNotifier interface {
	OnPropertyChanged(fn func(PropertyChange)) (unsubscribe func())
}

// PropertyChangingNotifier is implemented by objects that also announce
// property changes before they happen.
type PropertyChangingNotifier interface {
	OnPropertyChanging(fn func(PropertyChange)) (unsubscribe func())
}

// Properties implements PropertyNotifier and PropertyChangingNotifier.
// Embed it in a model struct and call NotifyChanged, or use SetProperty:
//
//	type todo struct {
//	    core.Properties
//	    title string
//	}
//
//	func (t *todo) SetTitle(title string) {
//	    core.SetProperty(&t.Properties, &t.title, title, "Title")
//	}
type Properties struct {
	changing Stream[PropertyChange]
	changed  Stream[PropertyChange]
}

// OnPropertyChanged subscribes fn to post-change notifications.
func (p *Properties) OnPropertyChanged(fn func(PropertyChange)) func() {
	return p.changed.Listen(fn)
}

// OnPropertyChanging subscribes fn to pre-change notifications.
func (p *Properties) OnPropertyChanging(fn func(PropertyChange)) func() {
	return p.changing.Listen(fn)
}

// NotifyChanging announces that property is about to change.
func (p *Properties) NotifyChanging(property string) {
	p.changing.Emit(PropertyChange{Property: property})
}

// NotifyChanged announces that property has changed.
func (p *Properties) NotifyChanged(property string) {
	p.changed.Emit(PropertyChange{Property: property})
}

// PropertyListenerCount returns the number of post-change subscribers.
func (p *Properties) PropertyListenerCount() int {
	return p.changed.ListenerCount()
}

// SetProperty assigns value to *field, surrounded by changing and changed
// notifications. Nothing happens when the value is unchanged.
// Reports whether the field was updated.
func SetProperty[T comparable](p *Properties, field *T, value T, property string) bool {
	if *field == value {
		return false
	}
	p.NotifyChanging(property)
	*field = value
	p.NotifyChanged(property)
	return true
}
