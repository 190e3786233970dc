package services

import (
	"context"
	"fmt"

	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
	"github.com/careslot/appointment-service/internal/utils"
)

type doctorService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewDoctorService(repo repositories.Repository, logger utils.Logger) DoctorService {
	return &doctorService{repo: repo, logger: logger}
}

func (s *doctorService) List(ctx context.Context) ([]*models.UserResponse, error) {
	doctors, err := s.repo.User().ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	responses := make([]*models.UserResponse, 0, len(doctors))
	for _, d := range doctors {
		responses = append(responses, d.ToResponse())
	}
	return responses, nil
}
