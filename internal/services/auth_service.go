package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/models"
	"gold-ledger/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminAlreadyExists = errors.New("admin with this email already exists")
	ErrAdminNotFound      = errors.New("admin not found")
)

// AuthService handles authentication business logic
type AuthService struct {
	adminRepo            repositories.AdminRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	passwordService      PasswordServiceInterface
	tokenService         TokenServiceInterface
	logger               *slog.Logger
	audit                *AuditLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	adminRepo repositories.AdminRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		adminRepo:            adminRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		passwordService:      passwordService,
		tokenService:         tokenService,
		logger:               logger,
		audit:                NewAuditLogger(logger),
	}
}

// Register creates a new admin and signs them in
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := s.adminRepo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, repositories.ErrAdminNotFound) {
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}
	if existing != nil {
		return nil, ErrAdminAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.adminRepo.Create(admin); err != nil {
		if errors.Is(err, repositories.ErrAdminAlreadyExists) {
			return nil, ErrAdminAlreadyExists
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.audit.LogAdminSignedIn(admin, true)

	return s.issue(admin)
}

// Login authenticates an admin and returns a session token
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			s.audit.LogSignInFailed("admin_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, admin.PasswordHash) {
		s.audit.LogSignInFailed("invalid_password")
		return nil, ErrInvalidCredentials
	}

	s.audit.LogAdminSignedIn(admin, false)
	return s.issue(admin)
}

// Logout revokes the token. A token that no longer validates is still revoked by its JTI.
func (s *AuthService) Logout(accessToken string) error {
	claims, err := s.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		jti, _ := s.tokenService.GetJTI(accessToken)
		if jti != "" {
			if err := s.blacklistToken(jti, uuid.Nil, time.Now().Add(24*time.Hour)); err != nil {
				s.logger.Error("failed to blacklist invalid token", "error", err, "jti", jti)
			}
		}
		return nil
	}

	adminID, _ := uuid.Parse(claims.AdminID)
	expiry, _ := s.tokenService.GetTokenExpiry(accessToken)
	if err := s.blacklistToken(claims.ID, adminID, expiry); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.audit.LogAdminSignedOut(adminID, claims.ID)
	return nil
}

// Profile returns the public view of an admin
func (s *AuthService) Profile(adminID uuid.UUID) (*models.AdminProfile, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	profile := admin.Profile()
	return &profile, nil
}

func (s *AuthService) issue(admin *models.Admin) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokenService.GenerateAccessToken(admin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.AuthResponse{
		Admin:       admin.Profile(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *AuthService) blacklistToken(jti string, adminID uuid.UUID, expiresAt time.Time) error {
	return s.blacklistedTokenRepo.Create(&models.BlacklistedToken{
		JTI:       jti,
		AdminID:   adminID,
		ExpiresAt: expiresAt.UTC(),
	})
}
