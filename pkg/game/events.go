// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package game

import "sync"

// EventType names a session event.
type EventType string

const (
	EventStarted EventType = "started"
	EventAnswer  EventType = "answer"
	EventTick    EventType = "tick"
	EventOver    EventType = "over"
)

// Event is published to session subscribers on every state change.
type Event struct {
	Type    EventType `json:"type"`
	Correct bool      `json:"correct,omitempty"`
	Message string    `json:"message,omitempty"`
	Session Snapshot  `json:"session"`
}

const subscriberBuffer = 16

// broadcaster fans events out to subscribers. Slow subscribers miss events
// instead of blocking the game.
type broadcaster struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subscribers: make(map[chan Event]struct{})}
}

func (b *broadcaster) subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (b *broadcaster) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
