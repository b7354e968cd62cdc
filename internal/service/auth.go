package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords so
// responses do not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	profileRepo repository.ProfileRepository
	tokens      security.TokenManager
}

func NewAuthService(profileRepo repository.ProfileRepository, tokens security.TokenManager) AuthService {
	return &authService{profileRepo: profileRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, email, name, phone, password string) (*domain.Profile, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", domain.NewValidationError("email", "invalid email")
	}
	if name == "" {
		return nil, "", "", domain.NewValidationError("name", "required")
	}
	if len(password) < 8 {
		return nil, "", "", domain.NewValidationError("password", "must be at least 8 characters")
	}

	if _, err := s.profileRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", domain.NewValidationError("email", "already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("hash password: %w", err)
	}

	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Phone:        phone,
		Role:         domain.RoleClient,
		PasswordHash: string(hash),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, "", "", err
	}

	return s.issueTokens(profile)
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	return s.issueTokens(profile)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// Reload the profile so a role change takes effect on refresh.
	profile, err := s.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", security.ErrInvalidToken
	}

	_, access, newRefresh, err := s.issueTokens(profile)
	return access, newRefresh, err
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a whitelisted sparse patch. Email, role and password
// are managed through dedicated flows, never through this one.
func (s *authService) UpdateProfile(ctx context.Context, userID string, patch map[string]string) error {
	allowed := map[string]string{
		"name":        "name",
		"phone":       "phone",
		"address":     "address",
		"company":     "company",
		"nationality": "nationality",
		"vatNumber":   "vat_number",
	}

	fields := repository.Fields{}
	for key, value := range patch {
		column, ok := allowed[key]
		if !ok {
			continue
		}
		if value == "" {
			continue
		}
		fields[column] = value
	}
	if len(fields) == 0 {
		return nil
	}
	return s.profileRepo.Update(ctx, userID, fields)
}

func (s *authService) issueTokens(profile *domain.Profile) (*domain.Profile, string, string, error) {
	access, err := s.tokens.GenerateAccessToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(profile.ID, profile.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return profile, access, refresh, nil
}
