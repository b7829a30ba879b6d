package auth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"

	"github.com/filmdb/movies-api/internal/common"
	"github.com/filmdb/movies-api/internal/logging"
	"github.com/filmdb/movies-api/internal/models"
)

const (
	passwordCost      = 10
	minPasswordLength = 6
	// bcrypt only reads the first 72 bytes of a password.
	maxPasswordBytes = 72
)

var errInvalidCredentials = common.NewError(common.ErrUnauthorized, "invalid credentials")

// UserStore defines the interface for user persistence.
type UserStore interface {
	Create(ctx context.Context, username, hashedPassword string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer signs a payload into a bearer token.
type TokenIssuer interface {
	Issue(p Payload) (string, error)
}

// Service registers users and exchanges credentials for tokens.
type Service struct {
	users  UserStore
	tokens TokenIssuer
	logger logging.Logger
	hash   func(password []byte, cost int) ([]byte, error)
}

func NewService(users UserStore, tokens TokenIssuer, logger logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger.With("module", "auth"),
		hash:   bcrypt.GenerateFromPassword,
	}
}

// Register stores a new user under the lowercased username and returns its id.
func (s *Service) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" || passwordLength(password) < minPasswordLength {
		return 0, common.NewError(common.ErrValidation, "username and password (min 6 chars) required")
	}

	hashed, err := s.hash(passwordBytes(password), passwordCost)
	if err != nil {
		return 0, common.WrapError(common.ErrInternal, "failed to process registration", err)
	}

	id, err := s.users.Create(ctx, strings.ToLower(username), string(hashed))
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return 0, common.WrapError(common.ErrConflict, "username already in use", err)
		}
		return 0, common.WrapError(common.ErrStorage, "failed to register user", err)
	}

	return id, nil
}

// Login returns a signed token for valid credentials. Unknown users, lookup
// failures and wrong passwords all produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", common.NewError(common.ErrValidation, "username and password required")
	}

	user, err := s.users.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "user lookup failed", "err", err)
		}
		return "", errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordBytes(password)); err != nil {
		return "", errInvalidCredentials
	}

	token, err := s.tokens.Issue(Payload{ID: user.ID, Username: user.Username})
	if err != nil {
		return "", common.WrapError(common.ErrInternal, "failed to create token", err)
	}

	return token, nil
}

// passwordLength counts UTF-16 code units, so a character outside the BMP
// counts as two.
func passwordLength(password string) int {
	n := 0
	for _, r := range password {
		n += utf16.RuneLen(r)
	}
	return n
}

// passwordBytes truncates to the bytes bcrypt uses. Longer passwords hash and
// compare on their first 72 bytes instead of failing.
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
