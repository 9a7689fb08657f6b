package shared

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int64
}

// BaseAggregateRoot provides common fields for aggregate roots.
// Version is the optimistic-lock counter and is owned by the store:
// a versioned save only succeeds when the supplied version matches the
// committed row, and the store bumps the counter in the same write.
// Domain code never increments it.
type BaseAggregateRoot struct {
	BaseEntity
	Version int64 `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int64 {
	return a.Version
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}
