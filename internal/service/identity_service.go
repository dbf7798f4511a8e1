package service

import (
	"context"
	"errors"
	"fmt"
	"recipe/internal/auth"
	"recipe/internal/entity"
	"recipe/internal/metrics"
	"recipe/internal/model"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserFields are the optional attributes set at account creation.
type UserFields struct {
	Name     string
	IsStaff  bool
	IsActive *bool
}

// ProfileUpdate is a self-service change; nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string
	Password *string
}

// IdentityService owns account creation, credential checks and profile updates.
type IdentityService struct {
	repo              model.Repository
	validate          *validator.Validate
	minPasswordLength int
}

// NewIdentityService 创建身份服务
func NewIdentityService(repo model.Repository, minPasswordLength int) *IdentityService {
	if minPasswordLength <= 0 {
		minPasswordLength = 5
	}
	return &IdentityService{
		repo:              repo,
		validate:          validator.New(),
		minPasswordLength: minPasswordLength,
	}
}

// NormalizeEmail trims and lower-cases the whole address. Registration and
// lookup both go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a regular account.
func (s *IdentityService) CreateUser(ctx context.Context, email, password string, fields UserFields) (*entity.DbUser, error) {
	return s.createUser(ctx, email, password, fields, false)
}

// CreateSuperuser registers an account with staff and superuser flags set.
func (s *IdentityService) CreateSuperuser(ctx context.Context, email, password string, fields UserFields) (*entity.DbUser, error) {
	fields.IsStaff = true
	return s.createUser(ctx, email, password, fields, true)
}

func (s *IdentityService) createUser(ctx context.Context, email, password string, fields UserFields, superuser bool) (*entity.DbUser, error) {
	normalized := NormalizeEmail(email)

	verr := &ValidationError{}
	switch {
	case normalized == "":
		verr.Add("email", "this field is required")
	case s.validate.Var(normalized, "email") != nil:
		verr.Add("email", "enter a valid email address")
	}
	if msg := s.checkPassword(password); msg != "" {
		verr.Add("password", msg)
	}
	name := strings.TrimSpace(fields.Name)
	if utf8.RuneCountInString(name) > 255 {
		verr.Add("name", "ensure this field has no more than 255 characters")
	}
	if !verr.Empty() {
		return nil, verr
	}

	if _, err := s.repo.GetUserByEmail(ctx, normalized); err == nil {
		return nil, NewValidationError("email", "user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.DbUser{
		Email:        normalized,
		PasswordHash: hash,
		Name:         name,
		IsActive:     fields.IsActive == nil || *fields.IsActive,
		IsStaff:      fields.IsStaff,
		IsSuperuser:  superuser,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("email", "user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	role := "user"
	if superuser {
		role = "superuser"
	}
	metrics.UsersCreatedTotal.WithLabelValues(role).Inc()
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("user created")
	return user, nil
}

// VerifyCredentials returns the account matching email and password.
func (s *IdentityService) VerifyCredentials(ctx context.Context, email, password string) (*entity.DbUser, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" || password == "" {
		auth.BurnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, normalized)
	if err != nil {
		auth.BurnPasswordCheck(password)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile applies a self-service change to userID only.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*entity.DbUser, error) {
	var updates entity.UserUpdates
	verr := &ValidationError{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if utf8.RuneCountInString(name) > 255 {
			verr.Add("name", "ensure this field has no more than 255 characters")
		}
		updates.Name = &name
	}
	if update.Password != nil {
		if msg := s.checkPassword(*update.Password); msg != "" {
			verr.Add("password", msg)
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates.PasswordHash = &hash
	}

	if err := s.repo.UpdateUser(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetUser(ctx, userID)
}

// GetUser loads an account by id.
func (s *IdentityService) GetUser(ctx context.Context, id uint) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// ListUsers returns every account.
func (s *IdentityService) ListUsers(ctx context.Context) ([]entity.DbUser, error) {
	return s.repo.ListUsers(ctx)
}

// EnsureSuperuser creates the superuser unless the email is already taken.
// The boolean reports whether an account was created.
func (s *IdentityService) EnsureSuperuser(ctx context.Context, email, password string) (*entity.DbUser, bool, error) {
	if NormalizeEmail(email) == "" {
		return nil, false, NewValidationError("email", "this field is required")
	}
	existing, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up superuser: %w", err)
	}
	user, err := s.CreateSuperuser(ctx, email, password, UserFields{})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *IdentityService) checkPassword(password string) string {
	if password == "" {
		return "this field is required"
	}
	if strings.TrimSpace(password) == "" {
		return "this field may not be blank"
	}
	if utf8.RuneCountInString(password) < s.minPasswordLength {
		return fmt.Sprintf("ensure this field has at least %d characters", s.minPasswordLength)
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Sprintf("ensure this field has no more than %d bytes", auth.MaxPasswordBytes)
	}
	return ""
}
