package entity

import "time"

// DbUser represents a persisted user account.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"column:name;type:varchar(255)" json:"name"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsStaff      bool      `gorm:"column:is_staff;not null;default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"column:is_superuser;not null;default:false" json:"is_superuser"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// UserProfile is the public view of an account.
type UserProfile struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserSummary is the staff-facing view of an account.
type UserSummary struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCreateRequest is the registration payload. Length policy on the password
// is enforced by the identity service, which knows the configured minimum.
type UserCreateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// AdminUserCreateRequest is the payload staff use to add accounts.
type AdminUserCreateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	IsStaff  bool   `json:"is_staff"`
	IsActive *bool  `json:"is_active"`
}

// TokenRequest exchanges credentials for a token.
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the opaque token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileUpdateRequest is the self-service update payload.
type ProfileUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}
