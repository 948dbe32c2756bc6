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

func TestCampusCreateWithPreview(t *testing.T) {
	f := newFixture(t)
	flows := f.campusFlows()
	ctx := context.Background()

	f.api.On("ListCampuses", mock.Anything, "backend-token", domain.CampusFilter{}).
		Return([]domain.Campus{{ID: "c0", Name: "Yaba Tech"}}, nil).Once()
	_, err := flows.List.Load(ctx, f.session, nil)
	require.NoError(t, err)

	form, err := flows.Form.Open(f.session)
	require.NoError(t, err)

	form, _, err = flows.Form.SetFields(ctx, f.session, form.ID, campusFields())
	require.NoError(t, err)

	form, notes, err := flows.Form.Submit(ctx, f.session, form.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, workflow.StagePreview, form.Stage)
	require.NotNil(t, form.Preview)
	assert.Equal(t, 2.5, form.Preview.AverageHalfDistance)

	f.api.On("CreateCampus", mock.Anything, "backend-token", mock.MatchedBy(func(p *domain.CampusPayload) bool {
		return p.Name == "Unilag" && len(p.Coordinates) == 4
	})).Return(&domain.Campus{ID: "c1", Name: "Unilag", IsActive: true}, nil).Once()

	form, notes, err = flows.Form.Confirm(ctx, f.session, form.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Notification{domain.Success("Campus created successfully!")}, notes)
	assert.Equal(t, workflow.StageEditing, form.Stage)
	assert.Equal(t, "", form.Draft.Get("name"))

	view, err := flows.List.View(f.session)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
	_, ok := flows.List.Find(f.session, "c1")
	assert.True(t, ok)

	_, _, err = flows.Form.Confirm(ctx, f.session, form.ID)
	assert.ErrorIs(t, err, workflow.ErrWrongStage)
	f.api.AssertExpectations(t)
}

func TestCampusCreateIncompleteDraft(t *testing.T) {
	f := newFixture(t)
	flows := f.campusFlows()
	ctx := context.Background()

	form, err := flows.Form.Open(f.session)
	require.NoError(t, err)
	fields := campusFields()
	delete(fields, "description")
	_, _, err = flows.Form.SetFields(ctx, f.session, form.ID, fields)
	require.NoError(t, err)

	form, notes, err := flows.Form.Submit(ctx, f.session, form.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []domain.Notification{domain.Failure(domain.MsgAllFieldsRequired)}, notes)
	assert.Equal(t, workflow.StageEditing, form.Stage)
	f.api.AssertNotCalled(t, "CreateCampus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCampusCreateBackendFailure(t *testing.T) {
	f := newFixture(t)
	flows := f.campusFlows()
	ctx := context.Background()

	form, err := flows.Form.Open(f.session)
	require.NoError(t, err)
	_, _, err = flows.Form.SetFields(ctx, f.session, form.ID, campusFields())
	require.NoError(t, err)
	_, _, err = flows.Form.Submit(ctx, f.session, form.ID)
	require.NoError(t, err)

	f.api.On("CreateCampus", mock.Anything, "backend-token", mock.Anything).
		Return(nil, backendError(http.StatusBadRequest, "")).Once()

	form, notes, err := flows.Form.Confirm(ctx, f.session, form.ID)
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.Equal(t, []domain.Notification{domain.Failure("Failed to create campus.")}, notes)
	assert.Equal(t, "Unilag", form.Draft.Get("name"))
}

func TestCampusListFilters(t *testing.T) {
	f := newFixture(t)
	flows := f.campusFlows()
	ctx := context.Background()

	campuses := make([]domain.Campus, 0, 7)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		campuses = append(campuses, domain.Campus{ID: id, Name: "Campus " + id})
	}
	filter := domain.CampusFilter{Name: "Campus", EduMailExtension: "edu.ng"}
	f.api.On("ListCampuses", mock.Anything, "backend-token", filter).Return(campuses, nil).Once()

	view, err := flows.List.Load(ctx, f.session, map[string]string{"name": " Campus ", "eduMailExtension": "edu.ng"})
	require.NoError(t, err)
	assert.Len(t, view.Rows, 5)
	assert.Equal(t, 2, view.Controls.TotalPages)

	view, err = flows.List.Page(ctx, f.session, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Controls.Page)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "f", view.Rows[0].ID)
	f.api.AssertExpectations(t)
}

func TestCampusListDegrades(t *testing.T) {
	t.Run("backend failure shows an empty list", func(t *testing.T) {
		f := newFixture(t)
		flows := f.campusFlows()
		f.api.On("ListCampuses", mock.Anything, "backend-token", domain.CampusFilter{}).
			Return(nil, backendError(http.StatusInternalServerError, "boom")).Once()

		view, err := flows.List.Load(context.Background(), f.session, nil)
		require.NoError(t, err)
		assert.Empty(t, view.Rows)
		assert.Equal(t, 1, view.Controls.TotalPages)
	})

	t.Run("rejected token closes the session", func(t *testing.T) {
		f := newFixture(t)
		flows := f.campusFlows()
		f.api.On("ListCampuses", mock.Anything, "backend-token", domain.CampusFilter{}).
			Return(nil, backendError(http.StatusUnauthorized, "")).Once()

		_, err := flows.List.Load(context.Background(), f.session, nil)
		assert.ErrorIs(t, err, domain.ErrSessionExpired)

		_, err = f.sessions.Get(f.session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestCampusDetailSave(t *testing.T) {
	f := newFixture(t)
	flows := f.campusFlows()
	ctx := context.Background()

	original := domain.Campus{ID: "c1", Name: "Unilag", Description: "Main", EduMailExtension: "unilag.edu.ng", AverageHalfDistance: 2, Coordinates: sampleQuad(), Zones: []domain.Zone{{ID: "z1"}}}
	f.api.On("ListCampuses", mock.Anything, "backend-token", domain.CampusFilter{}).Return([]domain.Campus{original}, nil).Once()
	_, err := flows.List.Load(ctx, f.session, nil)
	require.NoError(t, err)

	d, err := flows.Detail.View(ctx, f.session, "c1")
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseViewing, d.Phase)

	_, err = flows.Detail.Edit(ctx, f.session)
	require.NoError(t, err)
	_, err = flows.Detail.SetFields(ctx, f.session, map[string]string{"name": "University of Lagos"})
	require.NoError(t, err)

	f.api.On("UpdateCampus", mock.Anything, "backend-token", "c1", mock.MatchedBy(func(p *domain.CampusPayload) bool {
		return p.Name == "University of Lagos" && p.EduMailExtension == "unilag.edu.ng"
	})).Return(&domain.Campus{ID: "c1", Name: "University of Lagos", EduMailExtension: "unilag.edu.ng"}, nil).Once()

	d, notes, err := flows.Detail.Save(ctx, f.session)
	require.NoError(t, err)
	assert.Equal(t, []domain.Notification{domain.Success("Campus updated successfully!")}, notes)
	assert.Equal(t, workflow.PhaseViewing, d.Phase)
	assert.False(t, d.Loading)
	assert.Len(t, d.Record.Zones, 1)

	row, ok := flows.List.Find(f.session, "c1")
	require.True(t, ok)
	assert.Equal(t, "University of Lagos", row.Name)

	_, _, err = flows.Detail.Delete(ctx, f.session, workflow.Confirmed(true))
	assert.ErrorIs(t, err, ErrNotSupported)
	f.api.AssertExpectations(t)
}

func TestCampusDetailDropsStaleSave(t *testing.T) {
	f := newFixture(t)
	flows := f.campusFlows()
	ctx := context.Background()

	a := domain.Campus{ID: "a", Name: "A", Description: "A", EduMailExtension: "a.edu", Coordinates: sampleQuad()}
	b := domain.Campus{ID: "b", Name: "B", Description: "B", EduMailExtension: "b.edu", Coordinates: sampleQuad()}
	f.api.On("ListCampuses", mock.Anything, "backend-token", domain.CampusFilter{}).Return([]domain.Campus{a, b}, nil).Once()
	_, err := flows.List.Load(ctx, f.session, nil)
	require.NoError(t, err)

	_, err = flows.Detail.View(ctx, f.session, "a")
	require.NoError(t, err)
	_, err = flows.Detail.Edit(ctx, f.session)
	require.NoError(t, err)
	_, err = flows.Detail.SetFields(ctx, f.session, map[string]string{"name": "A2"})
	require.NoError(t, err)

	f.api.On("UpdateCampus", mock.Anything, "backend-token", "a", mock.Anything).
		Run(func(mock.Arguments) {
			_, err := flows.Detail.View(ctx, f.session, "b")
			require.NoError(t, err)
		}).
		Return(&domain.Campus{ID: "a", Name: "A2"}, nil).Once()

	_, notes, err := flows.Detail.Save(ctx, f.session)
	assert.ErrorIs(t, err, workflow.ErrStale)
	assert.Empty(t, notes)

	d, err := flows.Detail.Get(f.session)
	require.NoError(t, err)
	assert.Equal(t, "b", d.Record.ID)
	assert.False(t, d.Loading)

	row, _ := flows.List.Find(f.session, "a")
	assert.Equal(t, "A", row.Name)
}

func TestCampusOptionsCached(t *testing.T) {
	f := newFixture(t)
	svc := NewCampusService(f.api, f.cache, f.sessions, f.activity, f.cfg.Logger, f.validate)
	ctx := context.Background()

	f.api.On("ListCampuses", mock.Anything, "backend-token", domain.CampusFilter{}).
		Return([]domain.Campus{{ID: "c1", Name: "Unilag"}}, nil).Once()

	for i := 0; i < 2; i++ {
		options, err := svc.Options(ctx, f.session)
		require.NoError(t, err)
		assert.Equal(t, []domain.CampusOption{{ID: "c1", Name: "Unilag"}}, options)
	}
	f.api.AssertNumberOfCalls(t, "ListCampuses", 1)
}
