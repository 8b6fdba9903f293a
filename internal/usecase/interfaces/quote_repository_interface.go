package interfaces

import (
	"context"

	"clearpoint_av/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote aggregates.
//
// The quote document is stored whole: options, labor, change log and the
// totals display cache travel together. Not-found is signalled by a
// zero-value Quote, not an error.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error)
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
}
