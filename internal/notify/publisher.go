// Package notify publishes domain events to NATS for downstream workers
// (email, push) that live outside this service.
package notify

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"volunteer_hub/internal/models"
)

const (
	SubjectEventCreated        = "event.created"
	SubjectRegistrationCreated = "registration.created"
	SubjectRegistrationUpdated = "registration.updated"
	SubjectMessageCreated      = "message.created"
)

type Publisher interface {
	PublishEventCreated(e *models.Event) error
	PublishRegistration(subject string, r *models.EventRegistration) error
	PublishMessageCreated(m *models.Message) error
	Close()
}

type EventCreated struct {
	EventType      string               `json:"event_type"`
	EventID        uint                 `json:"event_id"`
	OrganizationID uint                 `json:"organization_id"`
	Title          string               `json:"title"`
	Category       models.EventCategory `json:"category"`
	StartDate      time.Time            `json:"start_date"`
}

type RegistrationChanged struct {
	EventType      string                    `json:"event_type"`
	RegistrationID uint                      `json:"registration_id"`
	EventID        uint                      `json:"event_id"`
	VolunteerID    uint                      `json:"volunteer_id"`
	Status         models.RegistrationStatus `json:"status"`
	OccurredAt     time.Time                 `json:"occurred_at"`
}

type MessageCreated struct {
	EventType  string    `json:"event_type"`
	MessageID  uint      `json:"message_id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Subject    string    `json:"subject"`
	SentAt     time.Time `json:"sent_at"`
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("volunteer_hub"))
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) PublishEventCreated(e *models.Event) error {
	return p.publish(SubjectEventCreated, EventCreated{
		EventType:      SubjectEventCreated,
		EventID:        e.ID,
		OrganizationID: e.OrganizationID,
		Title:          e.Title,
		Category:       e.Category,
		StartDate:      e.StartDate,
	})
}

func (p *NatsPublisher) PublishRegistration(subject string, r *models.EventRegistration) error {
	return p.publish(subject, NewRegistrationChanged(subject, r))
}

func (p *NatsPublisher) PublishMessageCreated(m *models.Message) error {
	return p.publish(SubjectMessageCreated, MessageCreated{
		EventType:  SubjectMessageCreated,
		MessageID:  m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Subject:    m.Subject,
		SentAt:     m.CreatedAt,
	})
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

func (p *NatsPublisher) publish(subject string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).WithField("subject", subject).Error("notify: failed to marshal event")
		return err
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		logrus.WithError(err).WithField("subject", subject).Error("notify: failed to publish to NATS")
		return err
	}
	logrus.WithField("subject", subject).Debug("notify: published event")
	return nil
}

func NewRegistrationChanged(subject string, r *models.EventRegistration) RegistrationChanged {
	return RegistrationChanged{
		EventType:      subject,
		RegistrationID: r.ID,
		EventID:        r.EventID,
		VolunteerID:    r.VolunteerID,
		Status:         r.Status,
		OccurredAt:     time.Now().UTC(),
	}
}

// Nop discards everything; used when NATS_URL is unset.
type Nop struct{}

func (Nop) PublishEventCreated(*models.Event) error                     { return nil }
func (Nop) PublishRegistration(string, *models.EventRegistration) error { return nil }
func (Nop) PublishMessageCreated(*models.Message) error                 { return nil }
func (Nop) Close()                                                      {}
