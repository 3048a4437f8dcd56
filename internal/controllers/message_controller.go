package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/listing"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
	"volunteer_hub/internal/notify"
)

type sendMessageInput struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	EventID    *uint  `json:"event_id"`
	Subject    string `json:"subject" binding:"max=200"`
	Content    string `json:"content" binding:"required,max=5000"`
}

// SendMessage stores a direct message and pushes it to the receiver if they
// are connected.
func SendMessage(c *gin.Context) {
	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	senderID := middleware.CurrentUserID(c)
	if input.ReceiverID == senderID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a message to yourself"})
		return
	}

	var receivers int64
	if err := config.DB.Model(&models.User{}).Where("id = ?", input.ReceiverID).Count(&receivers).Error; err != nil {
		internalError(c, err, "SendMessage: failed to look up receiver")
		return
	}
	if receivers == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		return
	}

	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		EventID:    input.EventID,
		Subject:    strings.TrimSpace(input.Subject),
		Content:    input.Content,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		internalError(c, err, "SendMessage: failed to save message")
		return
	}

	messageHub.Deliver(&msg)
	publishAsync(notify.SubjectMessageCreated, func() error { return publisher.PublishMessageCreated(&msg) })

	c.JSON(http.StatusCreated, msg)
}

// Inbox pages through messages received by the caller, newest first.
// ?unread=true restricts it to unread messages.
func Inbox(c *gin.Context) {
	page := listing.ParsePage(c.Query("page"), c.Query("limit"))

	query := config.DB.Model(&models.Message{}).Where("receiver_id = ?", middleware.CurrentUserID(c))
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		internalError(c, err, "Inbox: failed to count messages")
		return
	}

	var messages []models.Message
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&messages).Error
	if err != nil {
		internalError(c, err, "Inbox: failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":   messages,
		"pagination": page.Describe(total),
	})
}

// MarkMessageRead flags one of the caller's received messages as read.
func MarkMessageRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var msg models.Message
	err := config.DB.Where("id = ? AND receiver_id = ?", id, middleware.CurrentUserID(c)).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		internalError(c, err, "MarkMessageRead: database error")
		return
	}

	if !msg.IsRead {
		if err := config.DB.Model(&msg).Update("is_read", true).Error; err != nil {
			internalError(c, err, "MarkMessageRead: failed to update message")
			return
		}
		msg.IsRead = true
	}

	c.JSON(http.StatusOK, msg)
}
