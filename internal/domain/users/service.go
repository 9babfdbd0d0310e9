package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"pet-care-tracker/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("forbidden")
)

type Service struct {
	repo   Repository
	tokens auth.TokenIssuer
	cost   int
	now    func() time.Time
}

func NewService(repo Repository, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if err := validateUsername(username); err != nil {
		return User{}, err
	}
	if err := validatePassword(in.Password); err != nil {
		return User{}, err
	}
	if err := validateEmail(email); err != nil {
		return User{}, err
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		CreatedAt:    s.now().UTC(),
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return User{}, err
	}
	u.ID = id
	return u, nil
}

// Session es el resultado de un login correcto.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// Login compara contra el hash y emite un token. Usuario inexistente y password
// incorrecta devuelven el mismo error.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(auth.Claims{UserID: u.ID, Username: u.Username})
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Username    *string
	Password    *string
	Email       *string
	Preferences *Preferences
}

// Update solo permite editar el propio perfil.
func (s *Service) Update(ctx context.Context, actorID, id int64, in UpdateInput) (User, error) {
	if actorID != id {
		return User{}, ErrForbidden
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Username != nil {
		v := strings.TrimSpace(*in.Username)
		if err := validateUsername(v); err != nil {
			return User{}, err
		}
		if v != u.Username {
			if other, err := s.repo.GetByUsername(ctx, v); err == nil && other.ID != u.ID {
				return User{}, ErrDuplicateUsername
			}
		}
		u.Username = v
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return User{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.cost)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		if err := validateEmail(v); err != nil {
			return User{}, err
		}
		u.Email = v
	}
	if in.Preferences != nil {
		u.NotificationPreferences = *in.Preferences
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func validateUsername(v string) error {
	if len(v) < 3 || len(v) > 50 {
		return fmt.Errorf("%w: username must be 3-50 characters", ErrInvalidInput)
	}
	return nil
}

func validatePassword(v string) error {
	// bcrypt ignora lo que pase de 72 bytes
	if len(v) < 6 || len(v) > 72 {
		return fmt.Errorf("%w: password must be 6-72 characters", ErrInvalidInput)
	}
	return nil
}

func validateEmail(v string) error {
	if v == "" {
		return nil
	}
	if _, err := mail.ParseAddress(v); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return nil
}
