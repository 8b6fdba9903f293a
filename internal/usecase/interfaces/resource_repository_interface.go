package interfaces

import (
	"context"

	"clearpoint_av/internal/domain/entities"
)

// IResourceRepository abstracts the labor resource registry (technicians and
// subcontractors) consulted when costing labor.
type IResourceRepository interface {
	ListResources(ctx context.Context) ([]entities.LaborResource, error)
}
