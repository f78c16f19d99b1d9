package repositories

import (
	"context"

	"packaging-report/internal/domain/entities"
)

// Keeps only the latest session per owner. Save overwrites, it never merges.
type SessionRepository interface {
	Save(ctx context.Context, owner string, session *entities.Session) error
	FindLatest(ctx context.Context, owner string) (*entities.Session, error)
	FindByID(ctx context.Context, id entities.SessionID) (*entities.Session, error)
}
