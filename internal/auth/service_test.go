package auth

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/nabhi/financeflow/internal/user"
)

type mockUserService struct {
	user *user.User
}

func (m *mockUserService) Register(_, _, _ string) (*user.User, error) {
	return nil, ErrInternalError
}

func (m *mockUserService) GetUserByID(userID string) (*user.User, error) {
	if m.user != nil && m.user.ID == userID {
		return m.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) GetUserByLoginOrEmail(loginOrEmail string) (*user.User, error) {
	if m.user != nil && (m.user.Login == loginOrEmail || m.user.Email == loginOrEmail) {
		return m.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) ChangePasswordWithOldPassword(_, _, _ string) error {
	return nil
}

type mockTwoFactorRepository struct {
	users   *mockUserService
	secrets map[string]string
}

func (m *mockTwoFactorRepository) EnableTwoFactor(userID, method string) error {
	if m.users.user != nil && m.users.user.ID == userID {
		m.users.user.TwoFactorEnabled = true
		m.users.user.TwoFactorMethod = method
	}
	return nil
}

func (m *mockTwoFactorRepository) GetTwoFactorSecret(userID string) (string, error) {
	secret, ok := m.secrets[userID]
	if !ok {
		return "", ErrUser2FANotEnabled
	}
	return secret, nil
}

func (m *mockTwoFactorRepository) SaveTwoFactorSecret(userID string, secret string) error {
	m.secrets[userID] = secret
	return nil
}

func (m *mockTwoFactorRepository) DisableTwoFactor(userID string) error {
	if m.users.user != nil && m.users.user.ID == userID {
		m.users.user.TwoFactorEnabled = false
		m.users.user.TwoFactorMethod = ""
	}
	delete(m.secrets, userID)
	return nil
}

func newAuthFixture(t *testing.T) (Service, *mockUserService, *mockTwoFactorRepository) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := &mockUserService{user: &user.User{
		ID:           "user-1",
		Email:        "nabhi@example.com",
		Login:        "nabhi-dev",
		PasswordHash: string(passwordHash),
		HashToken:    "hash-token-a",
	}}
	repo := &mockTwoFactorRepository{users: users, secrets: make(map[string]string)}
	jwtManager := &JWTManager{secret: "test-secret"}
	service := NewAuthService(repo, users, NewSessionManager(), jwtManager, Authenticator{})
	return service, users, repo
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	loggedIn, accessToken, refreshToken, err := service.Login("nabhi-dev", "correct horse battery")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", loggedIn.ID)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	jwtManager := &JWTManager{secret: "test-secret"}
	userID, err := jwtManager.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NoError(t, jwtManager.ValidateRefreshToken(refreshToken, "hash-token-a"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	_, _, _, err := service.Login("nabhi-dev", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown users are indistinguishable from bad passwords.
	_, _, _, err = service.Login("nobody@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTwoFactorEnrollmentAndLogin(t *testing.T) {
	service, users, repo := newAuthFixture(t)

	otpURI, err := service.RegisterTwoFactor("user-1", google2FAAuthMethod)
	assert.NoError(t, err)
	assert.Contains(t, otpURI, "otpauth://totp/FinanceFlow")

	secret := repo.secrets["user-1"]
	assert.NotEmpty(t, secret)

	code, err := totp.GenerateCode(secret, time.Now())
	assert.NoError(t, err)
	assert.NoError(t, service.VerifyTwoFactorCode("user-1", google2FAAuthMethod, code))
	assert.True(t, users.user.TwoFactorEnabled)

	// Password alone now parks the login behind the 2FA check.
	_, sessionToken, refreshToken, err := service.Login("nabhi-dev", "correct horse battery")
	assert.NoError(t, err)
	assert.Empty(t, refreshToken)
	assert.NotEmpty(t, sessionToken)

	code, err = totp.GenerateCode(secret, time.Now())
	assert.NoError(t, err)
	loggedIn, accessToken, refreshToken, err := service.VerifyTwoFactor(sessionToken, code)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", loggedIn.ID)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Session tokens are single use.
	_, _, _, err = service.VerifyTwoFactor(sessionToken, code)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestVerifyTwoFactor_RejectsBadCode(t *testing.T) {
	service, users, repo := newAuthFixture(t)

	users.user.TwoFactorEnabled = true
	users.user.TwoFactorMethod = google2FAAuthMethod
	repo.secrets["user-1"] = "JBSWY3DPEHPK3PXP"

	_, sessionToken, _, err := service.Login("nabhi-dev", "correct horse battery")
	assert.NoError(t, err)

	_, _, _, err = service.VerifyTwoFactor(sessionToken, "000000")
	assert.ErrorIs(t, err, ErrInvalid2FACode)
}

func TestRegisterTwoFactor_RejectsUnknownMethod(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	_, err := service.RegisterTwoFactor("user-1", "carrier_pigeon")
	assert.ErrorIs(t, err, ErrInvalidTwoFactorMethod)
}

func TestDisableTwoFactor(t *testing.T) {
	service, users, repo := newAuthFixture(t)

	_, err := service.RegisterTwoFactor("user-1", google2FAAuthMethod)
	assert.NoError(t, err)
	secret := repo.secrets["user-1"]

	code, err := totp.GenerateCode(secret, time.Now())
	assert.NoError(t, err)
	assert.NoError(t, service.VerifyTwoFactorCode("user-1", google2FAAuthMethod, code))

	code, err = totp.GenerateCode(secret, time.Now())
	assert.NoError(t, err)
	assert.NoError(t, service.DisableTwoFactorAuth("user-1", google2FAAuthMethod, code))
	assert.False(t, users.user.TwoFactorEnabled)
	assert.Empty(t, repo.secrets)
}

func TestRefreshAccessToken(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	accessToken, refreshToken, err := service.RefreshAccessToken("user-1")
	assert.NoError(t, err)

	jwtManager := &JWTManager{secret: "test-secret"}
	userID, err := jwtManager.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NoError(t, jwtManager.ValidateRefreshToken(refreshToken, "hash-token-a"))
}
