package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
	"github.com/orgfin/org_finance_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	auditSvc portssvc.AuditRecorderSvc
}

// NewUserService creates the user account service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, auditSvc portssvc.AuditRecorderSvc) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, auditSvc: auditSvc}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.ErrInternal
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user",
				slog.String("user_id", user.UserID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// VerifyCredentials checks email/password and records the login attempt.
func (s *userService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrForbidden
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActionType:  domain.AuditLogin,
		ActorUserID: user.UserID,
		TargetType:  domain.AuditTargetUser,
		TargetID:    user.UserID,
	})
	return user, nil
}

type tokenService struct {
	jwtSecret string
	expiry    time.Duration
	issuer    string
}

// NewTokenService creates the JWT issuer.
func NewTokenService(jwtSecret string, expiry time.Duration, issuer string) portssvc.TokenSvc {
	return &tokenService{jwtSecret: jwtSecret, expiry: expiry, issuer: issuer}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

func (s *tokenService) GenerateToken(userID string) (string, error) {
	return utils.GenerateJWT(userID, s.jwtSecret, s.expiry, s.issuer)
}
