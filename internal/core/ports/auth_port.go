package ports

import "github.com/sm8ta/campusride_admin_console/internal/core/domain"

type TokenService interface {
	CreateToken(session *domain.Session) (string, error)
	VerifyToken(token string) (*domain.TokenPayload, error)
}
