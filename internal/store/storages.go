package store

import "github.com/Z3ron7/server/internal/logger"

// Storages aggregates every repository backed by a single [DB].
type Storages struct {
	UserRepository      UserRepository
	QuestionRepository  QuestionRepository
	CatalogRepository   CatalogRepository
	ExamRepository      ExamRepository
	DashboardRepository DashboardRepository
}

// NewStorages wires all repositories onto db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:      NewUserRepository(db, logger),
		QuestionRepository:  NewQuestionRepository(db, logger),
		CatalogRepository:   NewCatalogRepository(db, logger),
		ExamRepository:      NewExamRepository(db, logger),
		DashboardRepository: NewDashboardRepository(db, logger),
	}
}
