package notify_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"volunteer_hub/internal/models"
	"volunteer_hub/internal/notify"
)

func TestRegistrationChanged_Marshal(t *testing.T) {
	r := &models.EventRegistration{
		Model:       gorm.Model{ID: 9},
		EventID:     3,
		VolunteerID: 4,
		Status:      models.RegistrationApproved,
	}
	ev := notify.NewRegistrationChanged(notify.SubjectRegistrationUpdated, r)

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "registration.updated", decoded["event_type"])
	require.Equal(t, "APPROVED", decoded["status"])
	require.EqualValues(t, 9, decoded["registration_id"])
}

func TestNopPublisher(t *testing.T) {
	var p notify.Publisher = notify.Nop{}
	require.NoError(t, p.PublishEventCreated(&models.Event{}))
	require.NoError(t, p.PublishRegistration(notify.SubjectRegistrationCreated, &models.EventRegistration{}))
	require.NoError(t, p.PublishMessageCreated(&models.Message{}))
	p.Close()
}
