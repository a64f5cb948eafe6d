package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetCode はパスワードリセット用の6桁コードです。
// user_id に一意インデックスがあり、ユーザーごとに最大1件しか存在しません。
type PasswordResetCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Code      string    `gorm:"size:6;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PasswordResetCode) TableName() string {
	return "password_reset_codes"
}

// IsExpired は now が発行時刻 + ttl を過ぎているかを返します。
func (c *PasswordResetCode) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.After(c.CreatedAt.Add(ttl))
}

// RefreshToken はリフレッシュトークンのハッシュを保持します。平文は保存しません。
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
