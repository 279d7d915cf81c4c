package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypeReplaced EventType = "replaced"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeAccount  EntityType = "account"
	EntityTypeCategory EntityType = "category"
	EntityTypeExpense  EntityType = "expense"
	EntityTypeMonth    EntityType = "month"
	EntityTypeSettings EntityType = "settings"
	EntityTypeState    EntityType = "state"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "expense.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "expense"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// AccountCreated creates an account.created event
func AccountCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAccount, payload)
}

// AccountUpdated creates an account.updated event
func AccountUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAccount, payload)
}

// AccountDeleted creates an account.deleted event
func AccountDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAccount, payload)
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, payload)
}

// CategoryDeleted creates a category.deleted event
func CategoryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCategory, payload)
}

// ExpenseCreated creates an expense.created event
func ExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpense, payload)
}

// ExpenseUpdated creates an expense.updated event
func ExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeExpense, payload)
}

// ExpenseDeleted creates an expense.deleted event
func ExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeExpense, payload)
}

// MonthUpdated creates a month.updated event (salary or seeding changes)
func MonthUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeMonth, payload)
}

// SettingsUpdated creates a settings.updated event
func SettingsUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSettings, payload)
}

// StateReplaced creates a state.replaced event, emitted when the whole
// AppState is swapped out (sign-out or an external sync push)
func StateReplaced(payload interface{}) Event {
	return NewEvent(EventTypeReplaced, EntityTypeState, payload)
}
