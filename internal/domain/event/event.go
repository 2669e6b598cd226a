// Package event is the notification outbox contract. Core operations return
// the events they produced instead of fanning out notifications themselves;
// the delivery collaborator drains the slice after the operation commits.
package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeRequestCreated  Type = "material_request.created"
	TypeRequestApproved Type = "material_request.approved"
	TypeRequestRejected Type = "material_request.rejected"
	TypeRequestReceived Type = "material_request.received"
)

// Audience selects who should be notified.
type Audience string

const (
	AudienceAdmins    Audience = "admins"
	AudienceRequester Audience = "requester"
)

type Event struct {
	// ID lets delivery consumers deduplicate redelivered events.
	ID         string
	Type       Type
	Audience   Audience
	// RecipientID is set when Audience is a single user.
	RecipientID string
	RequestID   string
	ProjectID   string
	Message     string
	OccurredAt  time.Time
}

// NewID generates an event identifier.
func NewID() string {
	return uuid.New().String()
}
