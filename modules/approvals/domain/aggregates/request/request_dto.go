package request

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/flowgate/flowgate/pkg/constants"
	"github.com/flowgate/flowgate/pkg/serrors"
)

type CreateDTO struct {
	Type        string `json:"type" validate:"required,oneof=wfh leave shift resource"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Important   bool   `json:"important"`

	EmployeeID uuid.UUID `json:"-" validate:"required"`
}

func (d *CreateDTO) Normalize() {
	d.Type = strings.TrimSpace(d.Type)
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	return validateStruct(d)
}

type DecideDTO struct {
	RequestID uuid.UUID `json:"-" validate:"required"`
	Decision  string    `json:"decision" validate:"required,oneof=approve reject"`
	Remark    string    `json:"remark"`

	ActorID uuid.UUID `json:"-" validate:"required"`
}

func (d *DecideDTO) Normalize() {
	d.Decision = strings.TrimSpace(d.Decision)
	d.Remark = strings.TrimSpace(d.Remark)
}

func (d *DecideDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	return validateStruct(d)
}

func validateStruct(v any) (serrors.ValidationErrors, bool) {
	errs := constants.Validate.Struct(v)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	for _, fieldErr := range errs.(validator.ValidationErrors) {
		validationErrors[fieldErr.Field()] = serrors.NewValidationError(
			fieldErr.Field(),
			"failed on '"+fieldErr.Tag()+"' validation",
		)
	}
	return validationErrors, false
}
