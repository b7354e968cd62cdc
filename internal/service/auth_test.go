package service

import (
	"context"
	"testing"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/repository"
	"kreol-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenManager() security.TokenManager {
	return security.NewTokenManager("test-secret-0123456789abcdef0123456789", time.Hour, 7*24*time.Hour)
}

func TestSignupCreatesClientProfile(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := NewAuthService(profileRepo, testTokenManager())

	profileRepo.On("GetByEmail", mock.Anything, "marie@example.com").Return(nil, domain.ErrNotFound)
	profileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Role == domain.RoleClient && p.PasswordHash != "" && p.PasswordHash != "secret-password"
	})).Return(nil)

	profile, access, refresh, err := svc.Signup(context.Background(), " Marie@Example.com ", "Marie", "+248 2511234", "secret-password")
	require.NoError(t, err)

	assert.Equal(t, "marie@example.com", profile.Email)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	profileRepo.AssertExpectations(t)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := NewAuthService(profileRepo, testTokenManager())

	profileRepo.On("GetByEmail", mock.Anything, "marie@example.com").
		Return(&domain.Profile{ID: "p-1"}, nil)

	_, _, _, err := svc.Signup(context.Background(), "marie@example.com", "Marie", "", "secret-password")
	require.Error(t, err)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(new(MockProfileRepo), testTokenManager())

	_, _, _, err := svc.Signup(context.Background(), "marie@example.com", "Marie", "", "short")
	require.Error(t, err)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)
}

func TestLoginWrongPassword(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := NewAuthService(profileRepo, testTokenManager())

	hash, err := bcrypt.GenerateFromPassword([]byte("the-right-one"), bcrypt.MinCost)
	require.NoError(t, err)
	profileRepo.On("GetByEmail", mock.Anything, "marie@example.com").
		Return(&domain.Profile{ID: "p-1", Email: "marie@example.com", PasswordHash: string(hash)}, nil)

	_, _, _, err = svc.Login(context.Background(), "marie@example.com", "the-wrong-one")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownAccountSameError(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := NewAuthService(profileRepo, testTokenManager())

	profileRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	tokens := testTokenManager()
	svc := NewAuthService(new(MockProfileRepo), tokens)

	access, err := tokens.GenerateAccessToken("p-1", "marie@example.com", string(domain.RoleClient))
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, security.ErrWrongTokenType)
}

func TestRefreshTokenReloadsProfile(t *testing.T) {
	tokens := testTokenManager()
	profileRepo := new(MockProfileRepo)
	svc := NewAuthService(profileRepo, tokens)

	refresh, err := tokens.GenerateRefreshToken("p-1", "marie@example.com")
	require.NoError(t, err)
	profileRepo.On("GetByID", mock.Anything, "p-1").
		Return(&domain.Profile{ID: "p-1", Email: "marie@example.com", Role: domain.RoleManager}, nil)

	access, newRefresh, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newRefresh)

	// The fresh access token carries the current role from the store.
	claims, err := tokens.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleManager), claims.Role)
}

func TestUpdateProfileWhitelistsFields(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := NewAuthService(profileRepo, testTokenManager())

	profileRepo.On("Update", mock.Anything, "p-1", mock.MatchedBy(func(fields repository.Fields) bool {
		_, hasRole := fields["role"]
		_, hasEmail := fields["email"]
		return fields["name"] == "New Name" && fields["vat_number"] == "VAT-42" && !hasRole && !hasEmail
	})).Return(nil)

	err := svc.UpdateProfile(context.Background(), "p-1", map[string]string{
		"name":      "New Name",
		"vatNumber": "VAT-42",
		"role":      "ADMIN",
		"email":     "evil@example.com",
	})
	require.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestUpdateProfileEmptyPatchIsNoop(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	svc := NewAuthService(profileRepo, testTokenManager())

	err := svc.UpdateProfile(context.Background(), "p-1", map[string]string{"name": ""})
	require.NoError(t, err)
	profileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
