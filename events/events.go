package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"betbroker/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBetPlaced     EventType = "bet_placed"
	EventTypeBetSettled    EventType = "bet_settled"
	EventTypeBalanceChange EventType = "balance_change"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BetPlacedEvent represents a bet accepted by the upstream API and
// persisted as pending
type BetPlacedEvent struct {
	UserID        int64
	BetID         int64
	ExternalBetID string
	Amount        int64
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetSettledEvent represents a bet resolved as won or lost
type BetSettledEvent struct {
	UserID    int64
	BetID     int64
	Won       bool
	WinAmount int64
}

func (e BetSettledEvent) Type() EventType {
	return EventTypeBetSettled
}

// BalanceChangeEvent represents a ledger mutation that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	ChangeAmount    int64
	TransactionType models.TransactionType
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow subscriber never blocks request flows.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// forwards them to the real bus only after the database commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a staging bus backed by the given bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful commit;
// uses a background context because the transaction context may
// already be done.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events. Called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
