package workflow

import (
	"context"
	"testing"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func campusSchema() Schema[domain.CampusPayload] {
	return Schema[domain.CampusPayload]{
		Kind:     "campus",
		Policy:   Policy{RequiresPreview: true},
		Initial:  domain.NewCampusDraft,
		Build:    domain.BuildCampusPayload,
		Messages: Messages{Created: "Campus created successfully", Failed: "Failed to create campus"},
	}
}

func signUpSchema() Schema[domain.Registration] {
	return Schema[domain.Registration]{
		Kind:       "signup",
		Initial:    domain.NewSignUpDraft,
		Crosscheck: domain.SignUpCrosscheck,
		Build:      domain.BuildRegistration,
		Messages:   Messages{Created: "Registration successful", Failed: "Registration failed"},
	}
}

func fillCampus(t *testing.T, w *FormWorkflow[domain.CampusPayload], f *Form[domain.CampusPayload]) {
	t.Helper()
	values := map[string]string{
		"name":                "Unilag",
		"description":         "Main campus",
		"eduMailExtension":    "unilag.edu.ng",
		"averageHalfDistance": "2.5",
		"coordinates.0.lat":   "6.51",
		"coordinates.0.lng":   "3.38",
		"coordinates.1.lat":   "6.52",
		"coordinates.1.lng":   "3.39",
		"coordinates.2.lat":   "6.53",
		"coordinates.2.lng":   "3.385",
		"coordinates.3.lat":   "6.5",
		"coordinates.3.lng":   "3.387",
	}
	for k, v := range values {
		require.NoError(t, w.SetField(f, k, v))
	}
}

func TestSignUpPasswordMismatch(t *testing.T) {
	w := NewFormWorkflow(signUpSchema(), nil)
	f := w.New("f1")

	require.NoError(t, w.SetField(f, "password", "abc"))
	assert.Empty(t, f.Inline)

	require.NoError(t, w.SetField(f, "confirmPassword", "abd"))
	assert.Equal(t, domain.MsgPasswordMismatch, f.Inline["confirmPassword"])

	require.NoError(t, w.SetField(f, "confirmPassword", "abc"))
	assert.NotContains(t, f.Inline, "confirmPassword")
}

func TestSubmitDirectPolicy(t *testing.T) {
	w := NewFormWorkflow(signUpSchema(), nil)
	f := w.New("f1")
	for k, v := range map[string]string{
		"firstName": "Ada", "lastName": "Obi", "email": "ada@x.ng",
		"phoneNumber": "080", "password": "pw", "confirmPassword": "pw",
	} {
		require.NoError(t, w.SetField(f, k, v))
	}

	var got domain.Registration
	rec := &Recorder{}
	err := w.Submit(context.Background(), f, rec, func(_ context.Context, p domain.Registration) error {
		got = p
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, []domain.Notification{domain.Success("Registration successful")}, rec.Drain())
	assert.Equal(t, domain.NewSignUpDraft(), f.Draft)
}

func TestSubmitInvalidEmitsOneNotification(t *testing.T) {
	w := NewFormWorkflow(campusSchema(), nil)
	f := w.New("f1")
	require.NoError(t, w.SetField(f, "name", "Unilag"))

	rec := &Recorder{}
	err := w.Submit(context.Background(), f, rec, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []domain.Notification{domain.Failure(domain.MsgAllFieldsRequired)}, rec.Drain())
	assert.Equal(t, StageEditing, f.Stage)
	assert.Equal(t, domain.MsgQuadIncomplete, f.Inline["coordinates"])
	assert.Equal(t, "Unilag", f.Draft.Get("name"))
}

func TestZoneRequiresCampus(t *testing.T) {
	w := NewFormWorkflow(Schema[domain.ZonePayload]{
		Kind:    "zone",
		Policy:  Policy{RequiresPreview: true},
		Initial: domain.NewZoneDraft,
		Build:   domain.BuildZonePayload,
	}, nil)
	f := w.New("z")
	require.NoError(t, w.SetField(f, "name", "Arts"))

	rec := &Recorder{}
	err := w.Submit(context.Background(), f, rec, nil)
	require.Error(t, err)
	assert.Equal(t, []domain.Notification{domain.Failure(domain.MsgCampusRequired)}, rec.Drain())
	assert.Nil(t, f.Preview)
}

func TestPreviewConfirm(t *testing.T) {
	w := NewFormWorkflow(campusSchema(), nil)
	f := w.New("f1")
	fillCampus(t, w, f)
	ctx := context.Background()
	rec := &Recorder{}

	calls := 0
	commit := func(_ context.Context, p domain.CampusPayload) error {
		calls++
		assert.Equal(t, 2.5, p.AverageHalfDistance)
		assert.Equal(t, domain.Coordinate{Lat: 6.53, Lng: 3.385}, p.Coordinates[domain.Top])
		return nil
	}

	require.NoError(t, w.Submit(ctx, f, rec, commit))
	assert.Equal(t, StagePreview, f.Stage)
	require.NotNil(t, f.Preview)
	assert.Zero(t, calls)
	assert.ErrorIs(t, w.SetField(f, "name", "x"), ErrWrongStage)

	require.NoError(t, w.Edit(f))
	assert.Equal(t, "Unilag", f.Draft.Get("name"))
	require.NoError(t, w.Submit(ctx, f, rec, commit))

	require.NoError(t, w.Confirm(ctx, f, rec, commit))
	assert.Equal(t, 1, calls)
	assert.Equal(t, StageEditing, f.Stage)
	assert.Nil(t, f.Preview)
	assert.Equal(t, domain.NewCampusDraft(), f.Draft)
	assert.Equal(t, []domain.Notification{domain.Success("Campus created successfully")}, rec.Drain())

	assert.ErrorIs(t, w.Confirm(ctx, f, rec, commit), ErrWrongStage)
}

func TestFailedCreateKeepsDraft(t *testing.T) {
	w := NewFormWorkflow(campusSchema(), nil)
	f := w.New("f1")
	fillCampus(t, w, f)
	ctx := context.Background()
	rec := &Recorder{}

	require.NoError(t, w.Submit(ctx, f, rec, nil))
	err := w.Confirm(ctx, f, rec, func(context.Context, domain.CampusPayload) error {
		return &domain.BackendError{Operation: "createCampus", Status: 500}
	})
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.Equal(t, []domain.Notification{domain.Failure("Failed to create campus")}, rec.Drain())
	assert.Equal(t, StageEditing, f.Stage)
	assert.Nil(t, f.Preview)
	assert.False(t, f.Loading)
	assert.Equal(t, "Unilag", f.Draft.Get("name"))
	assert.Equal(t, "3.385", f.Draft.Get("coordinates.2.lng"))
}

func TestBackendMessageIsShown(t *testing.T) {
	w := NewFormWorkflow(signUpSchema(), nil)
	f := w.New("f1")
	for _, k := range []string{"firstName", "lastName", "email", "phoneNumber", "password", "confirmPassword"} {
		require.NoError(t, w.SetField(f, k, "v"))
	}
	rec := &Recorder{}
	err := w.Submit(context.Background(), f, rec, func(context.Context, domain.Registration) error {
		return &domain.BackendError{Operation: "register", Status: 409, Message: "Email already exists"}
	})
	require.Error(t, err)
	assert.Equal(t, []domain.Notification{domain.Failure("Email already exists")}, rec.Drain())
}

func TestConfirmWhileInFlight(t *testing.T) {
	gate := NewLocalGate()
	w := NewFormWorkflow(campusSchema(), gate)
	f := w.New("f1")
	fillCampus(t, w, f)
	ctx := context.Background()
	rec := &Recorder{}
	require.NoError(t, w.Submit(ctx, f, rec, nil))

	calls := 0
	commit := func(ctx context.Context, p domain.CampusPayload) error {
		calls++
		twin := *f
		twin.Loading = false
		err := w.Confirm(ctx, &twin, rec, func(context.Context, domain.CampusPayload) error {
			calls++
			return nil
		})
		assert.ErrorIs(t, err, ErrInFlight)

		assert.ErrorIs(t, w.Confirm(ctx, f, rec, nil), ErrInFlight)
		return nil
	}
	require.NoError(t, w.Confirm(ctx, f, rec, commit))
	assert.Equal(t, 1, calls)
	assert.Len(t, rec.Drain(), 1)
}
