package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

const bcryptCost = 12

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// RegisterUser creates a user and the profile record its role calls for,
// both inside one transaction.
func RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	role, err := models.ParseRole(input.Role)
	if err != nil || !selfServiceRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var existing int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&existing).Error; err != nil {
		internalError(c, err, "RegisterUser: failed to check existing email")
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		internalError(c, err, "RegisterUser: could not hash password")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		user, err := createUserRecord(tx, input, role, hashedPassword)
		if err != nil {
			return err
		}
		return createProfileRecord(tx, user)
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
			return
		}
		internalError(c, err, "RegisterUser: could not create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// LoginUser exchanges email and password for a bearer token.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var user models.User
	err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(body.Email))).
		Preload("VolunteerProfile").
		Preload("OrganizationProfile").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		internalError(c, err, "LoginUser: database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		internalError(c, err, "LoginUser: could not generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// selfServiceRole reports whether anonymous signup may create the role.
// Admin accounts come from SeedAdmin only.
func selfServiceRole(role models.Role) bool {
	return role == models.RoleVolunteer || role == models.RoleOrganization
}

// SeedAdmin creates the admin account for email unless a user with that
// email already exists. It reports whether a row was inserted.
func SeedAdmin(db *gorm.DB, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return false, err
	}
	return true, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func createUserRecord(tx *gorm.DB, input registerInput, role models.Role, hashedPassword string) (*models.User, error) {
	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     role,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// createProfileRecord creates the role-specific extension record.
// The organization name starts out as the account name.
func createProfileRecord(tx *gorm.DB, user *models.User) error {
	switch user.Role {
	case models.RoleVolunteer:
		return tx.Create(&models.VolunteerProfile{UserID: user.ID}).Error
	case models.RoleOrganization:
		return tx.Create(&models.OrganizationProfile{UserID: user.ID, Name: user.Name}).Error
	}
	return nil
}
