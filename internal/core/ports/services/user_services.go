package services

import (
	"context"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/dto"
)

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// VerifyCredentials checks email/password and returns the user on match,
	// apperrors.ErrForbidden otherwise.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenSvc issues signed API tokens.
type TokenSvc interface {
	GenerateToken(userID string) (string, error)
}
