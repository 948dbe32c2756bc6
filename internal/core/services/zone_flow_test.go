package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func loadZones(t *testing.T, f *fixture, flows *ZoneFlows, zones ...domain.Zone) {
	t.Helper()
	f.api.On("ListZones", mock.Anything, "backend-token").Return(zones, nil).Once()
	_, err := flows.List.Load(context.Background(), f.session, nil)
	require.NoError(t, err)
}

func TestZoneCreateRequiresCampus(t *testing.T) {
	f := newFixture(t)
	flows := f.zoneFlows()
	ctx := context.Background()

	form, err := flows.Form.Open(f.session)
	require.NoError(t, err)
	_, _, err = flows.Form.SetFields(ctx, f.session, form.ID, map[string]string{"name": "Gate", "description": "North gate"})
	require.NoError(t, err)

	form, notes, err := flows.Form.Submit(ctx, f.session, form.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []domain.Notification{domain.Failure(domain.MsgCampusRequired)}, notes)
	assert.Equal(t, domain.MsgCampusRequired, form.Inline["campusId"])
}

func TestZoneListFiltersByCampus(t *testing.T) {
	f := newFixture(t)
	flows := f.zoneFlows()

	f.api.On("ListZones", mock.Anything, "backend-token").
		Return([]domain.Zone{{ID: "z1", CampusID: "c1"}, {ID: "z2", CampusID: "c2"}}, nil).Once()

	view, err := flows.List.Load(context.Background(), f.session, map[string]string{"campusId": "c2"})
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "z2", view.Rows[0].ID)
}

func TestZoneUpdateKeepsOwnCampus(t *testing.T) {
	f := newFixture(t)
	flows := f.zoneFlows()
	ctx := context.Background()
	loadZones(t, f, flows, domain.Zone{ID: "z1", CampusID: "c7", Name: "Gate", Description: "North", Coordinates: sampleQuad()})

	_, err := flows.Detail.View(ctx, f.session, "z1")
	require.NoError(t, err)
	_, err = flows.Detail.Edit(ctx, f.session)
	require.NoError(t, err)
	_, err = flows.Detail.SetFields(ctx, f.session, map[string]string{"description": "North gate"})
	require.NoError(t, err)

	f.api.On("UpdateZone", mock.Anything, "backend-token", "z1", mock.MatchedBy(func(p *domain.ZonePayload) bool {
		return p.CampusID == "c7" && p.Description == "North gate"
	})).Return(&domain.Zone{ID: "z1", CampusID: "c7", Name: "Gate", Description: "North gate"}, nil).Once()

	_, notes, err := flows.Detail.Save(ctx, f.session)
	require.NoError(t, err)
	assert.Equal(t, []domain.Notification{domain.Success("Zone updated successfully!")}, notes)
	f.api.AssertExpectations(t)
}

func TestZoneSaveBlankField(t *testing.T) {
	f := newFixture(t)
	flows := f.zoneFlows()
	ctx := context.Background()
	loadZones(t, f, flows, domain.Zone{ID: "z1", CampusID: "c1", Name: "Gate", Description: "North", Coordinates: sampleQuad()})

	_, err := flows.Detail.View(ctx, f.session, "z1")
	require.NoError(t, err)
	_, err = flows.Detail.Edit(ctx, f.session)
	require.NoError(t, err)
	_, err = flows.Detail.SetFields(ctx, f.session, map[string]string{"name": " "})
	require.NoError(t, err)

	d, notes, err := flows.Detail.Save(ctx, f.session)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []domain.Notification{domain.Failure(domain.MsgAllFieldsRequired)}, notes)
	assert.Equal(t, workflow.PhaseEditing, d.Phase)
	assert.False(t, d.Loading)
	f.api.AssertNotCalled(t, "UpdateZone", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestZoneDelete(t *testing.T) {
	t.Run("declined confirmation keeps the zone", func(t *testing.T) {
		f := newFixture(t)
		flows := f.zoneFlows()
		ctx := context.Background()
		loadZones(t, f, flows, domain.Zone{ID: "z1"}, domain.Zone{ID: "z2"})

		_, err := flows.Detail.View(ctx, f.session, "z1")
		require.NoError(t, err)

		var prompt string
		d, notes, err := flows.Detail.Delete(ctx, f.session, workflow.ConfirmFunc(func(p string) bool {
			prompt = p
			return false
		}))
		assert.ErrorIs(t, err, workflow.ErrNotConfirmed)
		assert.Empty(t, notes)
		assert.Equal(t, "Are you sure you want to delete this zone?", prompt)
		assert.False(t, d.Loading)
		f.api.AssertNotCalled(t, "DeleteZone", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmed delete removes the row", func(t *testing.T) {
		f := newFixture(t)
		flows := f.zoneFlows()
		ctx := context.Background()
		loadZones(t, f, flows, domain.Zone{ID: "z1"}, domain.Zone{ID: "z2"})

		_, err := flows.Detail.View(ctx, f.session, "z1")
		require.NoError(t, err)
		f.api.On("DeleteZone", mock.Anything, "backend-token", "z1").Return(nil).Once()

		d, notes, err := flows.Detail.Delete(ctx, f.session, workflow.Confirmed(true))
		require.NoError(t, err)
		assert.Equal(t, []domain.Notification{domain.Success("Zone deleted successfully!")}, notes)
		assert.Equal(t, workflow.PhaseClosed, d.Phase)

		view, err := flows.List.View(f.session)
		require.NoError(t, err)
		assert.Equal(t, 1, view.Total)
		_, ok := flows.List.Find(f.session, "z1")
		assert.False(t, ok)
	})

	t.Run("backend failure keeps the panel open", func(t *testing.T) {
		f := newFixture(t)
		flows := f.zoneFlows()
		ctx := context.Background()
		loadZones(t, f, flows, domain.Zone{ID: "z1"})

		_, err := flows.Detail.View(ctx, f.session, "z1")
		require.NoError(t, err)
		f.api.On("DeleteZone", mock.Anything, "backend-token", "z1").
			Return(backendError(http.StatusConflict, "")).Once()

		d, notes, err := flows.Detail.Delete(ctx, f.session, workflow.Confirmed(true))
		assert.ErrorIs(t, err, domain.ErrBackend)
		assert.Equal(t, []domain.Notification{domain.Failure("Failed to delete zone.")}, notes)
		assert.Equal(t, workflow.PhaseViewing, d.Phase)
		assert.False(t, d.Loading)
	})
}
