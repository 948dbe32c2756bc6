package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuth(f *fixture, tokens *tokenMock) *AuthService {
	return NewAuthService(f.api, tokens, 24*time.Hour, f.sessions, f.activity, f.cfg.Logger, f.validate)
}

func signUpFields() map[string]string {
	return map[string]string{
		"firstName":       "Ada",
		"lastName":        "Obi",
		"email":           "ada@campusride.ng",
		"phoneNumber":     "08030000000",
		"password":        "secret",
		"confirmPassword": "secret",
	}
}

func TestRegister(t *testing.T) {
	t.Run("password mismatch", func(t *testing.T) {
		f := newFixture(t)
		auth := newAuth(f, &tokenMock{})
		fields := signUpFields()
		fields["confirmPassword"] = "secreT"

		form, notes, err := auth.Register(context.Background(), fields)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, []domain.Notification{domain.Failure(domain.MsgPasswordMismatch)}, notes)
		assert.Equal(t, domain.MsgPasswordMismatch, form.Inline["confirmPassword"])
		f.api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("missing field warns", func(t *testing.T) {
		f := newFixture(t)
		auth := newAuth(f, &tokenMock{})
		fields := signUpFields()
		delete(fields, "phoneNumber")

		_, notes, err := auth.Register(context.Background(), fields)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, []domain.Notification{domain.Warning(domain.MsgFillRequired)}, notes)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		auth := newAuth(f, &tokenMock{})
		f.api.On("Register", mock.Anything, mock.MatchedBy(func(r *domain.Registration) bool {
			return r.Email == "ada@campusride.ng" && r.Password == "secret"
		})).Return(nil).Once()

		_, notes, err := auth.Register(context.Background(), signUpFields())
		require.NoError(t, err)
		assert.Equal(t, []domain.Notification{domain.Success("Registration successful!")}, notes)
	})

	t.Run("backend failure", func(t *testing.T) {
		f := newFixture(t)
		auth := newAuth(f, &tokenMock{})
		f.api.On("Register", mock.Anything, mock.Anything).Return(backendError(http.StatusConflict, "Email already in use")).Once()

		_, notes, err := auth.Register(context.Background(), signUpFields())
		assert.Error(t, err)
		assert.Equal(t, []domain.Notification{domain.Failure("Email already in use")}, notes)
	})
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	tokens := &tokenMock{}
	auth := newAuth(f, tokens)

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	backendToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":  exp.Unix(),
		"role": "operator",
	}).SignedString([]byte("backend-key"))
	require.NoError(t, err)

	f.api.On("Login", mock.Anything, &domain.Credentials{Email: "ops@campusride.ng", Password: "pw"}).
		Return(&domain.LoginResult{Token: backendToken}, nil).Once()
	tokens.On("CreateToken", mock.AnythingOfType("*domain.Session")).Return("console-token", nil).Once()

	consoleToken, session, err := auth.Login(context.Background(), map[string]string{"email": "ops@campusride.ng", "password": "pw"})
	require.NoError(t, err)
	assert.Equal(t, "console-token", consoleToken)
	assert.Equal(t, domain.Operator, session.Role)
	assert.True(t, session.ExpiresAt.Equal(exp))

	stored, err := f.sessions.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, backendToken, stored.BackendToken)

	require.NoError(t, auth.Logout(context.Background(), session))
	_, err = f.sessions.Get(session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLoginNormalizesRole(t *testing.T) {
	cases := map[string]domain.UserRole{
		"ADMIN":       domain.Admin,
		"SUPER_ADMIN": domain.Admin,
		"user":        domain.Admin,
		" Operator ":  domain.Operator,
	}
	for claim, want := range cases {
		t.Run(claim, func(t *testing.T) {
			f := newFixture(t)
			tokens := &tokenMock{}
			auth := newAuth(f, tokens)

			backendToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"role": claim,
			}).SignedString([]byte("backend-key"))
			require.NoError(t, err)

			f.api.On("Login", mock.Anything, mock.Anything).Return(&domain.LoginResult{Token: backendToken}, nil).Once()
			tokens.On("CreateToken", mock.Anything).Return("console-token", nil).Once()

			_, session, err := auth.Login(context.Background(), map[string]string{"email": "a@b.c", "password": "pw"})
			require.NoError(t, err)
			assert.Equal(t, want, session.Role)
		})
	}
}

func TestLoginOpaqueToken(t *testing.T) {
	f := newFixture(t)
	tokens := &tokenMock{}
	auth := newAuth(f, tokens)

	f.api.On("Login", mock.Anything, mock.Anything).Return(&domain.LoginResult{Token: "opaque"}, nil).Once()
	tokens.On("CreateToken", mock.Anything).Return("console-token", nil).Once()

	_, session, err := auth.Login(context.Background(), map[string]string{"email": "a@b.c", "password": "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.Admin, session.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)
}

func TestLoginRequiresBothFields(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(f, &tokenMock{})

	_, _, err := auth.Login(context.Background(), map[string]string{"email": "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}
