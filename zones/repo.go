package zones

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Zones is the store for geofence records
type Zones interface {
	repository.Repository[*Zone]

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Zone, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*Zone, error)
}

// Activities is the store for geofence transition records
type Activities interface {
	repository.Repository[*Activity]

	ListByZone(ctx context.Context, zoneID, userID uuid.UUID) ([]*Activity, error)
}

type zonesRepo struct {
	repository.Repository[*Zone]
	db *bun.DB
}

var _ Zones = (*zonesRepo)(nil)

func NewZonesRepository(db *bun.DB) Zones {
	repo := repository.NewRepository[*Zone](db, repository.ModelHandlers[*Zone]{
		NewRecord: func() *Zone { return &Zone{} },
		GetID: func(z *Zone) uuid.UUID {
			if z == nil {
				return uuid.Nil
			}
			return z.ID
		},
		SetID: func(z *Zone, id uuid.UUID) {
			if z != nil {
				z.ID = id
			}
		},
	})

	return &zonesRepo{
		Repository: repo,
		db:         db,
	}
}

func (r *zonesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Zone, error) {
	records := []*Zone{}

	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetOwned scopes the lookup to the owner. A zone that exists but
// belongs to someone else reads the same as one that does not exist.
func (r *zonesRepo) GetOwned(ctx context.Context, id, userID uuid.UUID) (*Zone, error) {
	record := &Zone{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

type activitiesRepo struct {
	repository.Repository[*Activity]
	db *bun.DB
}

var _ Activities = (*activitiesRepo)(nil)

func NewActivitiesRepository(db *bun.DB) Activities {
	repo := repository.NewRepository[*Activity](db, repository.ModelHandlers[*Activity]{
		NewRecord: func() *Activity { return &Activity{} },
		GetID: func(a *Activity) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Activity, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &activitiesRepo{
		Repository: repo,
		db:         db,
	}
}

func (r *activitiesRepo) ListByZone(ctx context.Context, zoneID, userID uuid.UUID) ([]*Activity, error) {
	records := []*Activity{}

	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.zone_id = ?", zoneID).
		Where("?TableAlias.user_id = ?", userID).
		Order("occurred_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// RepositoryManager exposes the zone domain repositories
type RepositoryManager interface {
	Zones() Zones
	Activities() Activities
}

type mngr struct {
	zones      Zones
	activities Activities
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		zones:      NewZonesRepository(db),
		activities: NewActivitiesRepository(db),
	}
}

func (m mngr) Zones() Zones {
	return m.zones
}

func (m mngr) Activities() Activities {
	return m.activities
}
