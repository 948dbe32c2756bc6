package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

var signUpMessages = workflow.Messages{
	Created: "Registration successful!",
	Failed:  "Registration failed. Please try again.",
}

type AuthService struct {
	resource
	api           ports.AuthAPI
	tokens        ports.TokenService
	tokenDuration time.Duration
	signUp        *workflow.FormWorkflow[domain.Registration]
	now           func() time.Time
}

func NewAuthService(
	api ports.AuthAPI,
	tokens ports.TokenService,
	tokenDuration time.Duration,
	sessions *SessionService,
	activity *ActivityService,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *AuthService {
	return &AuthService{
		resource:      resource{sessions: sessions, activity: activity, logger: logger, validate: validate},
		api:           api,
		tokens:        tokens,
		tokenDuration: tokenDuration,
		signUp: workflow.NewFormWorkflow(workflow.Schema[domain.Registration]{
			Kind:       "signup",
			Initial:    domain.NewSignUpDraft,
			Crosscheck: domain.SignUpCrosscheck,
			Build:      domain.BuildRegistration,
			Messages:   signUpMessages,
		}, nil),
		now: time.Now,
	}
}

// Register runs the sign-up form over the submitted fields and creates the
// account directly when they are valid.
func (s *AuthService) Register(ctx context.Context, fields map[string]string) (*workflow.Form[domain.Registration], []domain.Notification, error) {
	rec := &workflow.Recorder{}
	form := s.signUp.New("signup")
	for _, k := range sortedKeys(fields) {
		if err := s.signUp.SetField(form, k, fields[k]); err != nil {
			return form, rec.Drain(), err
		}
	}

	err := s.signUp.Submit(ctx, form, rec, func(ctx context.Context, reg domain.Registration) error {
		if err := s.check(&reg, "Registration"); err != nil {
			return err
		}
		err := s.api.Register(ctx, &reg)
		s.activity.Record(ctx, &domain.Session{Email: reg.Email}, domain.ResourceAuth, domain.ActionRegister, reg.Email, err)
		if err != nil {
			s.logger.Error("Registration failed", map[string]interface{}{
				"error": err.Error(),
				"email": reg.Email,
			})
			return err
		}
		s.logger.Info("User registered", map[string]interface{}{
			"email": reg.Email,
		})
		return nil
	})
	return form, rec.Drain(), err
}

// Login exchanges credentials for a backend token, opens a console session
// around it and returns the console token.
func (s *AuthService) Login(ctx context.Context, fields map[string]string) (string, *domain.Session, error) {
	cred, err := domain.BuildCredentials(domain.Draft(fields))
	if err != nil {
		return "", nil, err
	}

	result, err := s.api.Login(ctx, &cred)
	if err != nil {
		s.logger.Warn("Login failed", map[string]interface{}{
			"error": err.Error(),
			"email": cred.Email,
		})
		s.activity.Record(ctx, &domain.Session{Email: cred.Email}, domain.ResourceAuth, domain.ActionLogin, cred.Email, err)
		return "", nil, err
	}

	expiresAt, role := s.inspect(result.Token)
	session, err := s.sessions.Create(cred.Email, role, result.Token, expiresAt)
	if err != nil {
		return "", nil, err
	}

	consoleToken, err := s.tokens.CreateToken(session)
	if err != nil {
		s.sessions.Delete(session.ID)
		return "", nil, err
	}
	s.activity.Record(ctx, session, domain.ResourceAuth, domain.ActionLogin, cred.Email, nil)

	s.logger.Info("Operator signed in", map[string]interface{}{
		"email":      cred.Email,
		"session_id": session.ID.String(),
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	})
	return consoleToken, session, nil
}

func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if err := s.sessions.Delete(session.ID); err != nil {
		return err
	}
	s.activity.Record(ctx, session, domain.ResourceAuth, domain.ActionLogout, session.Email, nil)
	return nil
}

// inspect reads expiry and role from the backend token without verifying it;
// the console cannot know the backend's key. Non-JWT tokens get the
// configured lifetime and the admin role.
func (s *AuthService) inspect(backendToken string) (time.Time, domain.UserRole) {
	now := s.now()
	expiresAt := now.Add(s.tokenDuration)
	role := domain.Admin

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(backendToken, claims); err != nil {
		return expiresAt, role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.After(now) && exp.Before(expiresAt) {
		expiresAt = exp.Time
	}
	if r, ok := claims["role"].(string); ok {
		role = domain.ParseUserRole(r)
	}
	return expiresAt, role
}
