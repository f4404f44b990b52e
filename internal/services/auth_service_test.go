package services_test

import (
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"assetdesk/internal/models"
	"assetdesk/internal/services"
	"assetdesk/pkg/passhash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(id uint, hashed string) error {
	args := m.Called(id, hashed)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func newAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, "test_session_secret", 12*time.Hour, 360*time.Hour)
}

func validInput() services.RegisterInput {
	return services.RegisterInput{
		Username:        "testuser",
		Email:           "test@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	input := validInput()
	mockRepo.On("GetByUsername", input.Username).Return(nil, fmt.Errorf("user with username %s not found", input.Username)).Once()
	mockRepo.On("GetByEmail", input.Email).Return(nil, fmt.Errorf("user with email %s not found", input.Email)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register(input)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.Password)
	ok, err := passhash.Verify("password123", user.Password)
	assert.NoError(t, err)
	assert.True(t, ok)
	mockRepo.AssertExpectations(t)

	// Username already taken: no write happens.
	mockRepo.On("GetByUsername", input.Username).Return(&models.User{ID: 1, Username: input.Username}, nil).Once()
	_, err = authService.Register(input)
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Username already exists", validationErr.Message)
	mockRepo.AssertExpectations(t)

	// Email already registered.
	mockRepo.On("GetByUsername", input.Username).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", input.Email).Return(&models.User{ID: 1, Email: input.Email}, nil).Once()
	_, err = authService.Register(input)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Email already registered", validationErr.Message)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*services.RegisterInput)
		wantMsg string
	}{
		{
			name:    "password of 7 characters rejected",
			mutate:  func(in *services.RegisterInput) { in.Password = "short77"; in.ConfirmPassword = "short77" },
			wantMsg: "Your password must be 8 or more characters",
		},
		{
			name:    "password confirmation mismatch",
			mutate:  func(in *services.RegisterInput) { in.ConfirmPassword = "password124" },
			wantMsg: "Passwords do not match",
		},
		{
			name:    "username with symbols rejected",
			mutate:  func(in *services.RegisterInput) { in.Username = "bad_user!" },
			wantMsg: "Username must only be letters and numbers",
		},
		{
			name:    "3 character username rejected",
			mutate:  func(in *services.RegisterInput) { in.Username = "abc" },
			wantMsg: "Username must be between 4 and 25 characters",
		},
		{
			name:    "26 character username rejected",
			mutate:  func(in *services.RegisterInput) { in.Username = strings.Repeat("a", 26) },
			wantMsg: "Username must be between 4 and 25 characters",
		},
		{
			name:    "missing email rejected",
			mutate:  func(in *services.RegisterInput) { in.Email = "" },
			wantMsg: "A valid email address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			authService := newAuthService(mockRepo)

			input := validInput()
			tt.mutate(&input)
			_, err := authService.Register(input)

			var validationErr *services.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantMsg, validationErr.Message)
			// Validation failures never reach the repository.
			mockRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestAuthService_RegisterUsernameBoundaries(t *testing.T) {
	// The source comparison is 3 < len < 26, so 4 to 25 character
	// usernames are accepted.
	for _, username := range []string{"abcd", strings.Repeat("a", 24), strings.Repeat("a", 25)} {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)

		input := validInput()
		input.Username = username
		mockRepo.On("GetByUsername", username).Return(nil, fmt.Errorf("not found")).Once()
		mockRepo.On("GetByEmail", input.Email).Return(nil, fmt.Errorf("not found")).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

		_, err := authService.Register(input)
		assert.NoError(t, err, "username of length %d should be accepted", len(username))
		mockRepo.AssertExpectations(t)
	}
}

func TestAuthService_RegisterPasswordBoundary(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	input := validInput()
	input.Password = "eightch8"
	input.ConfirmPassword = "eightch8"
	mockRepo.On("GetByUsername", input.Username).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", input.Email).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	_, err := authService.Register(input)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashed, err := passhash.Hash("password123")
	assert.NoError(t, err)
	user := &models.User{
		ID:       7,
		Username: "testuser",
		Email:    "test@example.com",
		Password: hashed,
		Role:     models.RoleUser,
	}

	// Successful login; hash is current so no rehash happens.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	got, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)

	// Unknown username.
	mockRepo.On("GetByUsername", "nobody").Return(nil, fmt.Errorf("user with username nobody not found")).Once()
	_, err = authService.Login("nobody", "password123")
	var authErr *services.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Username does not exist", authErr.Message)
	mockRepo.AssertExpectations(t)

	// Wrong password never succeeds and never touches the stored hash.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, err = authService.Login("testuser", "wrongpassword")
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect password", authErr.Message)
	mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginRehashesOutdatedHash(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	outdated, err := passhash.HashWithParams("password123", passhash.Params{
		Memory:      32 * 1024,
		Iterations:  2,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	})
	assert.NoError(t, err)
	user := &models.User{ID: 3, Username: "legacy", Password: outdated, Role: models.RoleUser}

	var persisted string
	mockRepo.On("GetByUsername", "legacy").Return(user, nil).Once()
	mockRepo.On("UpdatePassword", uint(3), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { persisted = args.String(1) }).
		Return(nil).Once()

	got, err := authService.Login("legacy", "password123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// The persisted hash uses current parameters and still verifies.
	assert.False(t, passhash.NeedsRehash(persisted))
	ok, err := passhash.Verify("password123", persisted)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, persisted, got.Password)
}

func TestAuthService_IssueAndValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{ID: 42, Username: "testuser", Role: models.RoleAdmin}

	token, ttl, err := authService.IssueToken(user, false)
	assert.NoError(t, err)
	assert.Equal(t, 12*time.Hour, ttl)

	identity, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), identity.UserID)
	assert.Equal(t, "testuser", identity.Username)
	assert.Equal(t, models.RoleAdmin, identity.Role)

	// Remember-me extends the lifetime to 15 days.
	_, ttl, err = authService.IssueToken(user, true)
	assert.NoError(t, err)
	assert.Equal(t, 360*time.Hour, ttl)

	// Tampered tokens are rejected.
	_, err = authService.ValidateToken(token + "x")
	assert.Error(t, err)

	// Tokens signed with a different secret are rejected.
	other := services.NewAuthService(mockRepo, "other_secret", time.Hour, time.Hour)
	foreign, _, err := other.IssueToken(user, false)
	assert.NoError(t, err)
	_, err = authService.ValidateToken(foreign)
	assert.Error(t, err)
}
