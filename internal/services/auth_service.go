package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"assetdesk/internal/models"
	"assetdesk/internal/repositories"
	"assetdesk/pkg/passhash"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Identity is the authenticated principal carried by a session token.
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

// RegisterInput holds the registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthService handles registration, login, and session tokens.
type AuthService struct {
	userRepo    repositories.UserRepository
	validate    *validator.Validate
	secret      []byte
	sessionTTL  time.Duration // token lifetime without remember-me
	rememberTTL time.Duration // token lifetime with remember-me
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, secret string, sessionTTL, rememberTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		validate:    validator.New(),
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}
}

// Register validates the registration form, creates the account with role
// "user", and returns the new user. Validation failures come back as
// *ValidationError with the message to show on the form; nothing is written
// in that case.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if len(input.Password) < 8 {
		return nil, &ValidationError{Message: "Your password must be 8 or more characters"}
	}
	if input.Password != input.ConfirmPassword {
		return nil, &ValidationError{Message: "Passwords do not match"}
	}
	if err := s.validate.Var(input.Username, "required,alphanum"); err != nil {
		return nil, &ValidationError{Message: "Username must only be letters and numbers"}
	}
	// The source comparison is 3 < len < 26, so 4 to 25 characters pass.
	if err := s.validate.Var(input.Username, "min=4,max=25"); err != nil {
		return nil, &ValidationError{Message: "Username must be between 4 and 25 characters"}
	}
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return nil, &ValidationError{Message: "A valid email address is required"}
	}

	if existing, err := s.userRepo.GetByUsername(input.Username); err == nil && existing != nil {
		return nil, &ValidationError{Message: "Username already exists"}
	}
	if existing, err := s.userRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, &ValidationError{Message: "Email already registered"}
	}

	hashed, err := passhash.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can slip past the lookup above and hit
		// the unique index instead.
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "already exists") {
			return nil, &ValidationError{Message: "Username already exists"}
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the matching user. A stored
// hash produced with outdated argon2 parameters is transparently re-hashed
// and persisted after a successful verification.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, &AuthError{Message: "Username does not exist"}
	}

	ok, err := passhash.Verify(password, user.Password)
	if err != nil || !ok {
		return nil, &AuthError{Message: "Incorrect password"}
	}

	if passhash.NeedsRehash(user.Password) {
		rehashed, err := passhash.Hash(password)
		if err != nil {
			log.Printf("Failed to rehash password for user %s: %v", user.Username, err)
		} else if err := s.userRepo.UpdatePassword(user.ID, rehashed); err != nil {
			log.Printf("Failed to persist rehashed password for user %s: %v", user.Username, err)
		} else {
			user.Password = rehashed
		}
	}

	return user, nil
}

// IssueToken creates a signed session token for the user. The token lives
// 15 days worth of rememberTTL when remember is set, otherwise sessionTTL.
func (s *AuthService) IssueToken(user *models.User, remember bool) (string, time.Duration, error) {
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.New().String(),
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, ttl, nil
}

// ValidateToken parses and validates a session token, returning the
// identity it carries.
func (s *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("session token missing user_id claim")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("session token missing username claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("session token missing role claim")
	}

	return &Identity{
		UserID:   uint(userID),
		Username: username,
		Role:     role,
	}, nil
}
