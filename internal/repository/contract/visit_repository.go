package contract

import (
	"context"

	"vetvox-be/internal/entity"
	"vetvox-be/internal/repository/specification"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	Update(ctx context.Context, visit *entity.Visit) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visit, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Visit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
