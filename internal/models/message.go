package models

import "gorm.io/gorm"

type Message struct {
	gorm.Model
	SenderID   uint   `json:"sender_id" gorm:"not null;index"`
	ReceiverID uint   `json:"receiver_id" gorm:"not null;index"`
	EventID    *uint  `json:"event_id" gorm:"index"`
	Subject    string `json:"subject"`
	Content    string `json:"content" gorm:"type:text;not null"`
	IsRead     bool   `json:"is_read" gorm:"default:false"`
}
