package store

import (
	"context"
	"fmt"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
	"github.com/jackc/pgerrcode"
)

type catalogRepository struct {
	*DB
	logger *logger.Logger
}

// NewCatalogRepository constructs a [CatalogRepository] backed by db.
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	logger.Debug().Msg("creating catalog repository")
	return &catalogRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *catalogRepository) ListPrograms(ctx context.Context) ([]models.Program, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, listPrograms)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.ListPrograms").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	programs := make([]models.Program, 0)
	for rows.Next() {
		var program models.Program
		if err = rows.Scan(&program.ProgramID, &program.ProgramName); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		programs = append(programs, program)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return programs, nil
}

func (r *catalogRepository) ListCompetencies(ctx context.Context) ([]models.Competency, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, listCompetencies)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.ListCompetencies").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	competencies := make([]models.Competency, 0)
	for rows.Next() {
		var competency models.Competency
		if err = rows.Scan(&competency.CompetencyID, &competency.CompetencyName); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		competencies = append(competencies, competency)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return competencies, nil
}

func (r *catalogRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, listRooms)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.ListRooms").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	rooms := make([]models.Room, 0)
	for rows.Next() {
		var room models.Room
		if err = rows.Scan(&room.RoomID, &room.RoomName, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rooms = append(rooms, room)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return rooms, nil
}

// CreateRoom inserts a room. A taken name yields [ErrRoomAlreadyExists].
func (r *catalogRepository) CreateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	log := logger.FromContext(ctx)

	row := r.QueryRowContext(ctx, createRoom, room.RoomName)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*catalogRepository.CreateRoom").Msg("error inserting room")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Room{}, ErrRoomAlreadyExists
		}
		return models.Room{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&room.RoomID, &room.CreatedAt); err != nil {
		return models.Room{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return room, nil
}
