package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildZonePayload(t *testing.T) {
	t.Run("campus is checked first", func(t *testing.T) {
		d := NewZoneDraft()
		d.Set("name", "Faculty of Arts")

		_, err := BuildZonePayload(d)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MsgCampusRequired, verr.Message)
		assert.Equal(t, "campusId", verr.Field)
	})

	t.Run("all fields required", func(t *testing.T) {
		d := NewZoneDraft()
		d.Set("campusId", "c1")

		_, err := BuildZonePayload(d)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MsgAllFieldsRequired, verr.Message)
		assert.Equal(t, MsgQuadIncomplete, verr.Inline)
	})

	t.Run("valid draft", func(t *testing.T) {
		d := NewZoneDraft()
		d.Set("campusId", "c1")
		d.Set("name", "Arts")
		d.Set("description", "Arts block")
		putQuad(d, []Coordinate{{1, 2}, {3, 4}, {5, 6}, {7, 8}})

		p, err := BuildZonePayload(d)
		require.NoError(t, err)
		assert.Equal(t, "c1", p.CampusID)
		assert.Equal(t, Coordinate{Lat: 7, Lng: 8}, p.Coordinates[Bottom])
	})
}

func TestApplyZoneDraftKeepsIdentity(t *testing.T) {
	zone := Zone{
		ID:          "z1",
		CampusID:    "c1",
		Name:        "Arts",
		Description: "Arts block",
		IsActive:    true,
		Coordinates: []Coordinate{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
	}
	d := ZoneDraftOf(zone)
	d.Set("name", "Arts and Humanities")

	got, err := ApplyZoneDraft(zone, d)
	require.NoError(t, err)
	assert.Equal(t, "z1", got.ID)
	assert.True(t, got.IsActive)
	assert.Equal(t, "Arts and Humanities", got.Name)
	assert.Equal(t, "Arts", zone.Name)
}
