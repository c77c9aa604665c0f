package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event subjects published by catalog-service.
const (
	SubjectUserCreated       = "catalog.user.created"
	SubjectUserDeleted       = "catalog.user.deleted"
	SubjectPermissionGranted = "catalog.permission.granted"
	SubjectPermissionRevoked = "catalog.permission.revoked"
)

// UserEvent describes an account lifecycle change.
type UserEvent struct {
	EventType string     `json:"event_type"`
	UserID    uuid.UUID  `json:"user_id"`
	Role      string     `json:"role"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// PermissionEvent describes a grant change for a staff member.
type PermissionEvent struct {
	EventType string    `json:"event_type"`
	StaffID   uuid.UUID `json:"staff_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	Granted   bool      `json:"granted"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes access-control events to NATS. A nil publisher is
// valid and drops all events, so callers never need to guard.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS. Publishing is fire-and-forget; downstream
// services (audit, notifications) consume these subjects.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("catalog-service"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

func (p *Publisher) publish(subject string, event interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to marshal event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// PublishUserCreated publishes an account creation event.
func (p *Publisher) PublishUserCreated(userID uuid.UUID, role string, ownerID *uuid.UUID) {
	p.publish(SubjectUserCreated, UserEvent{
		EventType: SubjectUserCreated,
		UserID:    userID,
		Role:      role,
		OwnerID:   ownerID,
		Timestamp: time.Now().UTC(),
	})
}

// PublishUserDeleted publishes an account deletion event.
func (p *Publisher) PublishUserDeleted(userID uuid.UUID, role string, ownerID *uuid.UUID) {
	p.publish(SubjectUserDeleted, UserEvent{
		EventType: SubjectUserDeleted,
		UserID:    userID,
		Role:      role,
		OwnerID:   ownerID,
		Timestamp: time.Now().UTC(),
	})
}

// PublishPermissionGranted publishes a grant upsert event.
func (p *Publisher) PublishPermissionGranted(staffID, ownerID uuid.UUID, resource, action string, granted bool) {
	p.publish(SubjectPermissionGranted, PermissionEvent{
		EventType: SubjectPermissionGranted,
		StaffID:   staffID,
		OwnerID:   ownerID,
		Resource:  resource,
		Action:    action,
		Granted:   granted,
		Timestamp: time.Now().UTC(),
	})
}

// PublishPermissionRevoked publishes a grant deletion event.
func (p *Publisher) PublishPermissionRevoked(staffID, ownerID uuid.UUID, resource, action string) {
	p.publish(SubjectPermissionRevoked, PermissionEvent{
		EventType: SubjectPermissionRevoked,
		StaffID:   staffID,
		OwnerID:   ownerID,
		Resource:  resource,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}

// IsConnected returns true if connected to NATS.
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
