package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/listing"
	"volunteer_hub/internal/models"
)

type verifyOrganizationInput struct {
	Verified *bool `json:"verified"`
}

// ListUsers pages through all accounts, optionally narrowed by ?role.
func ListUsers(c *gin.Context) {
	page := listing.ParsePage(c.Query("page"), c.Query("limit"))

	query := config.DB.Model(&models.User{})
	if raw := c.Query("role"); raw != "" {
		role, err := models.ParseRole(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		internalError(c, err, "ListUsers: failed to count users")
		return
	}

	var users []models.User
	err := query.Session(&gorm.Session{}).
		Preload("OrganizationProfile").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		internalError(c, err, "ListUsers: failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "pagination": page.Describe(total)})
}

// VerifyOrganization sets the verified badge shown next to an organization's events.
// An empty body verifies; {"verified": false} revokes.
func VerifyOrganization(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input verifyOrganizationInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}
	}
	verified := true
	if input.Verified != nil {
		verified = *input.Verified
	}

	var org models.OrganizationProfile
	if err := config.DB.First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		internalError(c, err, "VerifyOrganization: database error")
		return
	}

	if err := config.DB.Model(&org).Update("is_verified", verified).Error; err != nil {
		internalError(c, err, "VerifyOrganization: failed to update organization")
		return
	}
	org.IsVerified = verified

	invalidateListing(c)
	c.JSON(http.StatusOK, org)
}
