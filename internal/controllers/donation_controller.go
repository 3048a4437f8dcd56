package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

type createDonationInput struct {
	OrganizationID uint    `json:"organization_id" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Currency       string  `json:"currency" binding:"omitempty,len=3,alpha"`
	Type           string  `json:"type"`
	Frequency      string  `json:"frequency"`
	Message        string  `json:"message" binding:"max=1000"`
	Anonymous      bool    `json:"anonymous"`
}

type donationStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// receivedDonation hides the donor of anonymous gifts.
type receivedDonation struct {
	models.Donation
	DonorName string `json:"donor_name"`
}

// CreateDonation records a pledge from the caller to an organization.
// Payment processing happens elsewhere; the donation starts PENDING.
func CreateDonation(c *gin.Context) {
	var input createDonationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	donationType, ok := models.ParseDonationType(input.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation type"})
		return
	}

	var frequency *models.RecurringFrequency
	if donationType == models.DonationRecurring {
		f, ok := models.ParseFrequency(input.Frequency)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recurring donations need a valid frequency"})
			return
		}
		frequency = &f
	}

	var org models.OrganizationProfile
	if err := config.DB.First(&org, input.OrganizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		internalError(c, err, "CreateDonation: database error")
		return
	}

	currency := strings.ToUpper(input.Currency)
	if currency == "" {
		currency = "USD"
	}

	donation := models.Donation{
		DonorID:        middleware.CurrentUserID(c),
		OrganizationID: org.ID,
		Amount:         input.Amount,
		Currency:       currency,
		Type:           donationType,
		Status:         models.DonationPending,
		IsRecurring:    donationType == models.DonationRecurring,
		Frequency:      frequency,
		Message:        input.Message,
		Anonymous:      input.Anonymous,
	}
	if err := config.DB.Create(&donation).Error; err != nil {
		internalError(c, err, "CreateDonation: failed to save donation")
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// MyDonations lists donations made by the caller.
func MyDonations(c *gin.Context) {
	var donations []models.Donation
	err := config.DB.Preload("Organization").
		Where("donor_id = ?", middleware.CurrentUserID(c)).
		Order("created_at DESC").
		Find(&donations).Error
	if err != nil {
		internalError(c, err, "MyDonations: failed to fetch donations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": donations})
}

// ReceivedDonations lists donations to the caller's organization.
func ReceivedDonations(c *gin.Context) {
	org, ok := requireOrganizationProfile(c, config.DB)
	if !ok {
		return
	}

	var donations []models.Donation
	err := config.DB.Where("organization_id = ?", org.ID).
		Order("created_at DESC").
		Find(&donations).Error
	if err != nil {
		internalError(c, err, "ReceivedDonations: failed to fetch donations")
		return
	}

	donorIDs := make([]uint, 0, len(donations))
	for _, d := range donations {
		if !d.Anonymous {
			donorIDs = append(donorIDs, d.DonorID)
		}
	}
	names := map[uint]string{}
	if len(donorIDs) > 0 {
		var donors []models.User
		if err := config.DB.Select("id", "name").Where("id IN ?", donorIDs).Find(&donors).Error; err != nil {
			internalError(c, err, "ReceivedDonations: failed to fetch donors")
			return
		}
		for _, u := range donors {
			names[u.ID] = u.Name
		}
	}

	var total float64
	out := make([]receivedDonation, 0, len(donations))
	for _, d := range donations {
		rd := receivedDonation{Donation: d, DonorName: "Anonymous"}
		if d.Anonymous {
			rd.DonorID = 0
		} else {
			rd.DonorName = names[d.DonorID]
		}
		if d.Status == models.DonationCompleted {
			total += d.Amount
		}
		out = append(out, rd)
	}

	c.JSON(http.StatusOK, gin.H{"donations": out, "total_completed": total})
}

// UpdateDonationStatus lets the receiving organization settle a donation.
func UpdateDonationStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input donationStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	status, ok := models.ParseDonationStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var donation models.Donation
	if err := config.DB.First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		internalError(c, err, "UpdateDonationStatus: database error")
		return
	}
	if !authorizeOrganization(c, donation.OrganizationID) {
		return
	}

	if err := config.DB.Model(&donation).Update("status", status).Error; err != nil {
		internalError(c, err, "UpdateDonationStatus: failed to update donation")
		return
	}
	donation.Status = status

	c.JSON(http.StatusOK, donation)
}
