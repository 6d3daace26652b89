package client

import "sync"

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a transient message for the user.
type Notification struct {
	Level       Level
	Title       string
	Description string
}

type Notifier interface {
	Notify(Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

// NotificationLog keeps every notification it receives.
type NotificationLog struct {
	mu    sync.Mutex
	items []Notification
}

func (l *NotificationLog) Notify(n Notification) {
	l.mu.Lock()
	l.items = append(l.items, n)
	l.mu.Unlock()
}

func (l *NotificationLog) All() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notification(nil), l.items...)
}

// Count returns how many notifications of level were received.
func (l *NotificationLog) Count(level Level) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, item := range l.items {
		if item.Level == level {
			n++
		}
	}
	return n
}

func (l *NotificationLog) Last() (Notification, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return Notification{}, false
	}
	return l.items[len(l.items)-1], true
}
