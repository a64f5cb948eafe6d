package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"fadeu/internal/model"

	"golang.org/x/crypto/bcrypt"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func internalError(err error) *model.AppError {
	return model.NewAppError("INTERNAL_SERVER_ERROR", "An unexpected error occurred.", "", err)
}

// validateNewPassword は長さと確認用パスワードの一致を検証します。
func validateNewPassword(password, confirm string, minLen int, field, confirmField string) error {
	if utf8.RuneCountInString(password) < minLen {
		return model.NewAppError("PASSWORD_TOO_SHORT",
			fmt.Sprintf("Password must be at least %d characters long.", minLen), field, model.ErrInvalidInput)
	}
	if password != confirm {
		return model.NewAppError("PASSWORD_MISMATCH", "Passwords do not match.", confirmField, model.ErrInvalidInput)
	}
	return nil
}

func hashPassword(password, field string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", model.NewAppError("PASSWORD_TOO_LONG", "Password must be at most 72 bytes long.", field, model.ErrInvalidInput)
		}
		return "", internalError(err)
	}
	return string(hashed), nil
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// randomHex は n バイトの乱数を16進文字列で返します。
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// generateResetCode は 000000〜999999 の一様な6桁コードを返します。
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
