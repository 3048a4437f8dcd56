package controllers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"volunteer_hub/internal/models"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the domain binding tags to gin's validator.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("eventcategory", func(fl validator.FieldLevel) bool {
			_, err := models.ParseCategory(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("registrationdecision", func(fl validator.FieldLevel) bool {
			s, ok := models.ParseRegistrationStatus(fl.Field().String())
			return ok && (s == models.RegistrationApproved || s == models.RegistrationRejected)
		})
	})
}
