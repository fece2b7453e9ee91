package dto

import (
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the domain-aware binding tags used by the request DTOs.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("planstatus", func(fl validator.FieldLevel) bool {
		return domain.PlanStatus(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).IsValid()
	})
}
