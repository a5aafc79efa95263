package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
	At      time.Time
}

func New(kind Kind, title, message string) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Title:   title,
		Message: message,
		At:      time.Now(),
	}
}

type Sink interface {
	Notify(n Notification)
}

// Feed keeps the notifications that have not been dismissed yet, oldest first.
type Feed struct {
	mu      sync.Mutex
	items   []Notification
	changes *Broadcaster
	logger  *slog.Logger
}

func NewFeed(logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{changes: NewBroadcaster(), logger: logger}
}

func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	f.items = append(f.items, n)
	f.mu.Unlock()

	level := slog.LevelInfo
	if n.Kind == KindError {
		level = slog.LevelWarn
	}
	f.logger.Log(context.Background(), level, "notification", "kind", n.Kind, "title", n.Title, "message", n.Message)
	f.changes.Broadcast()
}

func (f *Feed) Items() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Dismiss removes a notification by id and reports whether it was present.
func (f *Feed) Dismiss(id string) bool {
	f.mu.Lock()
	removed := false
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			removed = true
			break
		}
	}
	f.mu.Unlock()

	if removed {
		f.changes.Broadcast()
	}
	return removed
}

func (f *Feed) Changes() *Broadcaster {
	return f.changes
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) {}
