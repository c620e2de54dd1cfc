package zones

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
)

func TestZoneRequestValidate(t *testing.T) {
	valid := ZoneRequest{
		Name:      "Home",
		Latitude:  37.7749,
		Longitude: -122.4194,
		RadiusM:   100,
	}

	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("boundary coordinates", func(t *testing.T) {
		r := valid
		r.Latitude = -90
		r.Longitude = 180
		assert.NoError(t, r.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*ZoneRequest)
		field  string
	}{
		{
			name:   "missing name",
			mutate: func(r *ZoneRequest) { r.Name = "" },
			field:  "name",
		},
		{
			name:   "latitude below range",
			mutate: func(r *ZoneRequest) { r.Latitude = -90.5 },
			field:  "latitude",
		},
		{
			name:   "latitude above range",
			mutate: func(r *ZoneRequest) { r.Latitude = 91 },
			field:  "latitude",
		},
		{
			name:   "longitude below range",
			mutate: func(r *ZoneRequest) { r.Longitude = -181 },
			field:  "longitude",
		},
		{
			name:   "longitude above range",
			mutate: func(r *ZoneRequest) { r.Longitude = 180.1 },
			field:  "longitude",
		},
		{
			name:   "radius too small",
			mutate: func(r *ZoneRequest) { r.RadiusM = 1 },
			field:  "radius_m",
		},
		{
			name:   "radius too large",
			mutate: func(r *ZoneRequest) { r.RadiusM = 200000 },
			field:  "radius_m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)

			err := r.Validate()
			assert.Error(t, err)

			verr, ok := err.(validation.Errors)
			assert.True(t, ok)
			assert.Contains(t, verr, tt.field)
		})
	}
}

func TestRecordActivityRequestValidate(t *testing.T) {
	t.Run("enter", func(t *testing.T) {
		r := RecordActivityRequest{Kind: ActivityEnter}
		assert.NoError(t, r.Validate())
	})

	t.Run("exit", func(t *testing.T) {
		r := RecordActivityRequest{Kind: ActivityExit}
		assert.NoError(t, r.Validate())
	})

	t.Run("missing kind", func(t *testing.T) {
		r := RecordActivityRequest{}
		assert.Error(t, r.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		r := RecordActivityRequest{Kind: "loiter"}
		assert.Error(t, r.Validate())
	})
}
