package validation

import (
	"strings"

	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/util"
)

const MaxResultLimit = 500

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID checks that id is a canonical ULID.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// ValidateConsentRequest requires an explicit consent choice.
func (v *Validator) ValidateConsentRequest(req *dto.ConsentRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if req == nil || req.Consented == nil {
		errors = append(errors, domain.NewMissingFieldError("consented"))
	}
	return errors
}

// ValidateAnswerRequest requires a label for the current image.
func (v *Validator) ValidateAnswerRequest(req *dto.AnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if req == nil || req.AIGenerated == nil {
		errors = append(errors, domain.NewMissingFieldError("ai_generated"))
	}
	return errors
}

// ValidateResultLimit bounds the number of stored summaries listed at once.
func (v *Validator) ValidateResultLimit(limit int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if limit <= 0 || limit > MaxResultLimit {
		errors = append(errors, domain.ValidationError{
			Field:   "limit",
			Code:    domain.CodeInvalidInput,
			Message: "limit must be between 1 and 500",
			Value:   limit,
		})
	}
	return errors
}
