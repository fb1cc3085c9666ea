package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
)

// registerCustomValidators hooks domain-aware validations into gin's binding
// engine so bad role strings are rejected before they reach a service.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("workflowrole", func(fl validator.FieldLevel) bool {
		return domain.UserRole(fl.Field().String()).IsValid()
	})
}
