package services

import (
	"context"
	"fmt"
	"time"

	"github.com/careslot/appointment-service/internal/events"
	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
	"github.com/careslot/appointment-service/internal/utils"
	"github.com/careslot/appointment-service/internal/validator"
)

type appointmentService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.Publisher
}

func NewAppointmentService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, publisher events.Publisher) AppointmentService {
	return &appointmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Create books an appointment; the caller always becomes the patient.
func (s *appointmentService) Create(ctx context.Context, identity Identity, req *CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateAppointmentCreate(req, time.Now()); len(errs) > 0 {
		return nil, errs
	}

	isDoctor, err := s.repo.User().HasRole(ctx, req.DoctorID, models.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("failed to check doctor: %w", err)
	}
	if !isDoctor {
		return nil, ValidationErrors{{
			Field:   "doctor_id",
			Message: "must reference a registered doctor",
			Value:   req.DoctorID,
			Rule:    "doctor_exists",
		}}
	}

	status := req.Status
	if status == "" {
		status = models.StatusScheduled
	}

	appointment := &models.Appointment{
		PatientID: identity.UserID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Reason:    req.Reason,
		Status:    status,
	}

	if err := s.repo.Appointment().Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.logger.Info("appointment created",
		"appointment_id", appointment.ID,
		"patient_id", appointment.PatientID,
		"doctor_id", appointment.DoctorID,
	)

	// Reload with relations for the event's actor name and the response's
	// display fields. The caller is the patient by construction, whatever
	// their role, so the reload is scoped by patient_id rather than ScopeFor.
	callerScope := repositories.Scope{Column: "patient_id", Value: identity.UserID}
	created, err := s.repo.Appointment().GetByID(ctx, callerScope, appointment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}

	s.publish(ctx, events.AppointmentCreated, created, identity)

	return buildAppointmentResponse(created, identity), nil
}

func (s *appointmentService) List(ctx context.Context, identity Identity) ([]*models.AppointmentResponse, error) {
	appointments, err := s.repo.Appointment().List(ctx, ScopeFor(identity))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	responses := make([]*models.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		responses = append(responses, buildAppointmentResponse(a, identity))
	}
	return responses, nil
}

func (s *appointmentService) GetByID(ctx context.Context, identity Identity, id string) (*models.AppointmentResponse, error) {
	appointment, err := s.repo.Appointment().GetByID(ctx, ScopeFor(identity), id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Rows outside the caller's scope are reported as missing, never
			// as forbidden.
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return buildAppointmentResponse(appointment, identity), nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, identity Identity, id string, status models.AppointmentStatus) (*models.AppointmentResponse, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, ValidationErrors{{
			Field:   "status",
			Message: "must be one of: scheduled pending cancelled completed",
			Value:   status,
			Rule:    "oneof",
		}}
	}

	appointment, err := s.repo.Appointment().GetByID(ctx, ScopeFor(identity), id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if !CanTransition(appointment.Status, status) {
		return nil, ErrInvalidStatusTransition
	}

	appointment.Status = status
	if err := s.repo.Appointment().Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.logger.Info("appointment status updated",
		"appointment_id", appointment.ID,
		"status", status,
		"actor_id", identity.UserID,
	)

	s.publish(ctx, events.AppointmentStatusChanged, appointment, identity)

	return buildAppointmentResponse(appointment, identity), nil
}

func (s *appointmentService) Cancel(ctx context.Context, identity Identity, id string) (*models.AppointmentResponse, error) {
	return s.UpdateStatus(ctx, identity, id, models.StatusCancelled)
}

func (s *appointmentService) publish(ctx context.Context, eventType events.EventType, appointment *models.Appointment, identity Identity) {
	event := &events.AppointmentEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		ActorID:       identity.UserID,
		ActorName:     actorName(appointment, identity),
		Status:        appointment.Status,
		Date:          appointment.Date,
	}
	if err := s.publisher.PublishAppointmentEvent(ctx, event); err != nil {
		// The booking itself succeeded; a lost notification is not worth
		// failing the request over.
		s.logger.Error("failed to publish appointment event",
			"appointment_id", appointment.ID,
			"type", eventType,
			"error", err,
		)
	}
}

func actorName(appointment *models.Appointment, identity Identity) string {
	var actor *models.User
	switch identity.UserID {
	case appointment.PatientID:
		actor = &appointment.Patient
	case appointment.DoctorID:
		actor = &appointment.Doctor
	}
	if actor == nil || actor.ID == "" {
		return identity.Email
	}
	return actor.FirstName + " " + actor.LastName
}

// buildAppointmentResponse attaches the display fields of the counterpart:
// doctors see who booked, patients see whom they booked.
func buildAppointmentResponse(a *models.Appointment, identity Identity) *models.AppointmentResponse {
	resp := &models.AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Date:      a.Date,
		Reason:    a.Reason,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if identity.Role == models.RoleDoctor {
		if a.Patient.ID != "" {
			resp.PatientFirstName = &a.Patient.FirstName
			resp.PatientLastName = &a.Patient.LastName
			resp.PatientEmail = &a.Patient.Email
		}
		return resp
	}

	if a.Doctor.ID != "" {
		resp.DoctorFirstName = &a.Doctor.FirstName
		resp.DoctorLastName = &a.Doctor.LastName
		resp.Specialization = a.Doctor.Specialization
	}
	return resp
}
