package repository

import (
	"context"

	"mock-auth/internal/domain"
)

// CollectionName identifica el documento de usuarios dentro del medio durable.
const CollectionName = "users"

// SnapshotStore define el contrato de persistencia del snapshot durable:
// la colección completa se lee y se reescribe como un único documento.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, col domain.Collection) error
}
