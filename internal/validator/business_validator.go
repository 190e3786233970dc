package validator

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/careslot/appointment-service/internal/models"
)

// BusinessValidator handles the rules struct tags cannot express.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator(validate *validator.Validate) *BusinessValidator {
	return &BusinessValidator{validate: validate}
}

func (bv *BusinessValidator) structErrors(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateRegister checks a registration request, including the doctor
// specialization requirement.
func (bv *BusinessValidator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	errors := bv.structErrors(req)

	if req.Role == models.RoleDoctor && (req.Specialization == nil || *req.Specialization == "") {
		errors = append(errors, ValidationError{
			Field:   "specialization",
			Message: "is required for doctors",
			Rule:    "required_for_doctor",
		})
	}

	return errors
}

// ValidateAppointmentCreate checks a booking request. Appointment dates must
// be strictly in the future.
func (bv *BusinessValidator) ValidateAppointmentCreate(req *CreateAppointmentRequest, now time.Time) ValidationErrors {
	errors := bv.structErrors(req)

	if !req.Date.IsZero() && !req.Date.After(now) {
		errors = append(errors, ValidationError{
			Field:   "date",
			Message: "must be in the future",
			Value:   req.Date,
			Rule:    "future_date",
		})
	}

	return errors
}
