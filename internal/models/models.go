package models

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&VolunteerProfile{},
		&OrganizationProfile{},
		&Event{},
		&EventRegistration{},
		&VolunteerHour{},
		&Donation{},
		&Message{},
	}
}
