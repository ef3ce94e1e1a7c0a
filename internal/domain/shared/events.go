package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the domain; handlers react to them after the owning
// transaction scope has committed.
const (
	// Account events
	EventUserRegistered EventType = "user.registered"

	// Focus events
	EventTaskCreated     EventType = "focus.task_created"
	EventTaskStarted     EventType = "focus.task_started"
	EventTaskCompleted   EventType = "focus.task_completed"
	EventSessionRecorded EventType = "focus.session_recorded"

	// Community events
	EventEventPublished   EventType = "community.event_published"
	EventArticlePublished EventType = "community.article_published"
	EventListingPosted    EventType = "community.listing_posted"
	EventListingResolved  EventType = "community.listing_resolved"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string
}

// EventPublisher publishes domain events to interested handlers. Commands
// publish only after their transaction scope has committed.
type EventPublisher interface {
	// Publish delivers the event to all subscribed handlers.
	Publish(event Event)
}

// EventHandler processes a single domain event.
type EventHandler interface {
	// Handle processes the event. Errors are logged by the bus, never
	// propagated back to the publisher.
	Handle(event Event) error

	// Name returns the handler name for logging.
	Name() string
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// UserRegisteredEvent is emitted when a new account is created.
type UserRegisteredEvent struct {
	BaseEvent
	Email string `json:"email"`
}

// NewUserRegisteredEvent creates a UserRegisteredEvent.
func NewUserRegisteredEvent(userID, email string) UserRegisteredEvent {
	return UserRegisteredEvent{
		BaseEvent: NewBaseEvent(EventUserRegistered, userID),
		Email:     email,
	}
}

// TaskCompletedEvent is emitted when a task transitions to completed and
// XP was awarded. XPAwarded is zero when the completion was not applied
// (ownership mismatch or idempotency guard).
type TaskCompletedEvent struct {
	BaseEvent
	UserID    string `json:"user_id"`
	XPAwarded int    `json:"xp_awarded"`
}

// NewTaskCompletedEvent creates a TaskCompletedEvent.
func NewTaskCompletedEvent(taskID, userID string, xpAwarded int) TaskCompletedEvent {
	return TaskCompletedEvent{
		BaseEvent: NewBaseEvent(EventTaskCompleted, taskID),
		UserID:    userID,
		XPAwarded: xpAwarded,
	}
}

// SessionRecordedEvent is emitted when a study session is saved.
type SessionRecordedEvent struct {
	BaseEvent
	UserID          string `json:"user_id"`
	DurationMinutes int    `json:"duration_minutes"`
	XPAwarded       int    `json:"xp_awarded"`
}

// NewSessionRecordedEvent creates a SessionRecordedEvent.
func NewSessionRecordedEvent(sessionID, userID string, minutes, xpAwarded int) SessionRecordedEvent {
	return SessionRecordedEvent{
		BaseEvent:       NewBaseEvent(EventSessionRecorded, sessionID),
		UserID:          userID,
		DurationMinutes: minutes,
		XPAwarded:       xpAwarded,
	}
}
