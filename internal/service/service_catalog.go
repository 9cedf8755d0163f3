package service

import (
	"context"
	"errors"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
)

type catalogService struct {
	catalogRepository store.CatalogRepository
	validator         validators.Validator

	logger *logger.Logger
}

func NewCatalogService(catalog store.CatalogRepository, validator validators.Validator, logger *logger.Logger) CatalogService {
	return &catalogService{
		catalogRepository: catalog,
		validator:         validator,
		logger:            logger,
	}
}

func (s *catalogService) ListPrograms(ctx context.Context) ([]models.Program, error) {
	programs, err := s.catalogRepository.ListPrograms(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return programs, nil
}

func (s *catalogService) ListCompetencies(ctx context.Context) ([]models.Competency, error) {
	competencies, err := s.catalogRepository.ListCompetencies(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return competencies, nil
}

func (s *catalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.catalogRepository.ListRooms(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return rooms, nil
}

// CreateRoom adds an exam room. Room names are unique.
func (s *catalogService) CreateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	if err := s.validator.Validate(ctx, room); err != nil {
		return models.Room{}, validationError(err)
	}

	created, err := s.catalogRepository.CreateRoom(ctx, room)
	if errors.Is(err, store.ErrRoomAlreadyExists) {
		return models.Room{}, ErrRoomExists
	}
	if err != nil {
		return models.Room{}, storageError(err)
	}

	return created, nil
}
