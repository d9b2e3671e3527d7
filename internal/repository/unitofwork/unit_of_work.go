package unitofwork

import (
	"context"

	"vetvox-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	VisitRepository() contract.VisitRepository
}
