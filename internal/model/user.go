// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey は認証済みユーザーIDをコンテキストに格納するキーです。
const UserIDKey contextKey = "userID"

// User はプライマリストアのアカウントです。メールアドレスで一意 (小文字で保存)。
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `gorm:"size:150;not null" json:"first_name"`
	LastName     string     `gorm:"size:150;not null" json:"last_name"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	IsStaff      bool       `gorm:"not null" json:"is_staff"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse はクライアントに返すユーザー情報です。
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsStaff   bool      `json:"is_staff"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

type ProfileResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

type CheckAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          UserResponse `json:"user"`
}
