package collections

import (
	"context"
	"time"

	"github.com/go-drift/reactive/pkg/platform"
)

// FromChannelOptions configures FromChannel.
type FromChannelOptions[T any] struct {
	// Delay paces appends: after each item the feed waits Delay before
	// taking the next one. Zero appends as fast as items arrive.
	Delay time.Duration

	// Scheduler runs each append. Nil means platform.UIScheduler when a
	// dispatcher is registered. Without one, appends are queued until the
	// owner calls ChannelList.Pump.
	Scheduler platform.Scheduler

	// List configures the underlying list.
	List ListOptions[T]
}

// ChannelList is a List fed from a channel by a background goroutine.
type ChannelList[T any] struct {
	*List[T]
	done  chan struct{}
	queue *platform.QueueScheduler
}

// FromChannel returns a list that appends every item received from ch.
// Feeding stops when ctx is done or ch is closed.
//
// Appends are handed to a Scheduler; the feeding goroutine never touches
// the list itself. The default is decided here: platform.UIScheduler if
// platform.Dispatching reports a dispatcher, otherwise a queue drained by
// Pump on the goroutine that owns the list.
//
// Example:
//
//	feed := collections.FromChannel(ctx, results, collections.FromChannelOptions[Result]{
//	    Delay: 50 * time.Millisecond,
//	})
//	defer feed.Dispose()
//	// ... each frame:
//	feed.Pump()
func FromChannel[T any](ctx context.Context, ch <-chan T, opts FromChannelOptions[T]) *ChannelList[T] {
	c := &ChannelList[T]{
		List: NewListWithOptions(opts.List),
		done: make(chan struct{}),
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		if platform.Dispatching() {
			scheduler = platform.UIScheduler{}
		} else {
			c.queue = &platform.QueueScheduler{}
			scheduler = c.queue
		}
	}
	go c.feed(ctx, ch, opts.Delay, scheduler)
	return c
}

// Pump applies the appends queued so far and returns how many ran. It only
// has work when FromChannel fell back to queueing; call it from the
// goroutine that owns the list, e.g. once per frame.
func (c *ChannelList[T]) Pump() int {
	if c.queue == nil {
		return 0
	}
	return c.queue.Drain()
}

// Done is closed once the feeding goroutine has stopped. Appends it already
// scheduled may still be pending on the Scheduler.
func (c *ChannelList[T]) Done() <-chan struct{} {
	return c.done
}

func (c *ChannelList[T]) feed(ctx context.Context, ch <-chan T, delay time.Duration, scheduler platform.Scheduler) {
	defer close(c.done)

	var tick <-chan time.Time
	if delay > 0 {
		ticker := time.NewTicker(delay)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-ch:
			if !ok {
				return
			}
			scheduler.Schedule(func() { c.List.Add(item) })
		}
		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-tick:
		}
	}
}
