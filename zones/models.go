// Package zones holds the geofence domain the auth core protects:
// user owned zones and the enter/exit activity recorded against them.
package zones

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ActivityKind is the geofence transition direction
type ActivityKind = string

const (
	// ActivityEnter device crossed into the zone
	ActivityEnter ActivityKind = "enter"
	// ActivityExit device crossed out of the zone
	ActivityExit ActivityKind = "exit"
)

// Zone is a circular geofence owned by a single user.
type Zone struct {
	bun.BaseModel `bun:"table:zones,alias:zn"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Latitude      float64    `bun:"latitude,notnull" json:"latitude"`
	Longitude     float64    `bun:"longitude,notnull" json:"longitude"`
	RadiusM       float64    `bun:"radius_m,notnull" json:"radius_m"`
	NotifyOnEnter bool       `bun:"notify_on_enter" json:"notify_on_enter"`
	NotifyOnExit  bool       `bun:"notify_on_exit" json:"notify_on_exit"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Activity is one recorded geofence transition.
type Activity struct {
	bun.BaseModel `bun:"table:zone_activities,alias:za"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ZoneID        uuid.UUID    `bun:"zone_id,notnull,type:uuid" json:"zone_id,omitempty"`
	UserID        uuid.UUID    `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Kind          ActivityKind `bun:"kind,notnull" json:"kind,omitempty"`
	OccurredAt    *time.Time   `bun:"occurred_at,nullzero,default:current_timestamp" json:"occurred_at,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
