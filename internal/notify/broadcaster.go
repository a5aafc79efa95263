// Package notify carries two kinds of signal out of the controllers: change pings that
// tell a presentation layer to re-read state, and user-facing notifications.
package notify

import "sync"

// Broadcaster sends a ping to every subscriber when state changes.
// Subscribers receive an empty struct and should re-read the controller.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives pings. The caller must Unsubscribe it.
func (b *Broadcaster) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.listeners[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	_, ok := b.listeners[ch]
	delete(b.listeners, ch)
	b.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Broadcast never blocks: a subscriber with a pending ping is skipped.
func (b *Broadcaster) Broadcast() {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
