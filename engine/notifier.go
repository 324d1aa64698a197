package engine

// Notifier is a concurrency primitive for informing worker routines about the
// arrival of new work. Notifications are not queued: any number of Notify
// calls without a consumer collapse into a single pending notification.
// Notifier is safe to pass by value.
type Notifier struct {
	// the 1 element buffer covers the period between a consumer finding its
	// queue empty and listening to the channel again
	notifier chan struct{}
}

func NewNotifier() Notifier {
	return Notifier{
		notifier: make(chan struct{}, 1),
	}
}

// Notify sends a notification without blocking.
func (n Notifier) Notify() {
	select {
	case n.notifier <- struct{}{}:
	default:
	}
}

// Channel returns the channel on which notifications are received.
func (n Notifier) Channel() <-chan struct{} {
	return n.notifier
}
