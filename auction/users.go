package auction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gavel/models"
)

type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Confirmation string
	FirstName    string
	LastName     string
}

func (in RegisterInput) validate() error {
	var fields []FieldError
	if strings.TrimSpace(in.Username) == "" {
		fields = append(fields, FieldError{Field: "username", Message: "Username is required."})
	}
	if in.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "Password is required."})
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "Missing required fields.", Fields: fields}
	}
	if in.Password != in.Confirmation {
		return &ValidationError{
			Message: "Passwords must match.",
			Fields:  []FieldError{{Field: "confirmation", Message: "Passwords must match."}},
		}
	}
	return nil
}

// Register creates a new user. A duplicate username fails with ErrConflict
// and leaves no second record behind.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	const op = "Register"
	if err := input.validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to hash password, err=%w", op, err)
	}
	user := models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	}
	if result := s.db.WithContext(ctx).Create(&user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username %q already taken: %w", user.Username, ErrConflict)
		}
		return nil, fmt.Errorf("[%s] Fail to create user, err=%w", op, result.Error)
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. Wrong username and wrong
// password both fail with ErrUnauthorized, indistinguishably.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	const op = "Authenticate"
	var user models.User
	result := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("unknown username: %w", ErrUnauthorized)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find user, err=%w", op, result.Error)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("wrong password: %w", ErrUnauthorized)
	}
	return &user, nil
}

// GetUser loads a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "GetUser"
	var user models.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find user, err=%w", op, result.Error)
	}
	return &user, nil
}
