package services

import (
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pocketbase/pocketbase/core"
)

const (
	resetTokenDuration = time.Hour
	resetTokenType     = "passwordReset"
)

// NewPasswordResetToken issues a signed reset token for the user. The token
// is keyed on the user's token key, so changing the password (which rotates
// the key) invalidates every outstanding token — including the one just
// used.
func NewPasswordResetToken(user *core.Record) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Id,
		"type": resetTokenType,
		"exp":  time.Now().Add(resetTokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(user.TokenKey()))
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// ValidatePasswordResetToken verifies a reset token and returns the user it
// belongs to. Tampered, expired, mistyped and unknown-user tokens all fail.
func ValidatePasswordResetToken(app core.App, token string) (*core.Record, error) {
	// The signing key is per-user, so the subject has to be read before
	// the signature can be checked.
	unverified := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, unverified); err != nil {
		return nil, fmt.Errorf("malformed reset token: %w", err)
	}
	userID, _ := unverified["sub"].(string)
	if userID == "" {
		return nil, fmt.Errorf("reset token has no subject")
	}

	user, err := app.FindRecordById("users", userID)
	if err != nil {
		return nil, fmt.Errorf("reset token user not found")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(user.TokenKey()), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid reset token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != resetTokenType {
		return nil, fmt.Errorf("not a reset token")
	}
	if !user.GetBool("is_active") {
		return nil, fmt.Errorf("user is inactive")
	}
	return user, nil
}

// ResetPassword validates the token and sets the new password. Returns
// false without changing anything when the token is rejected.
func ResetPassword(app core.App, token, newPassword string) bool {
	user, err := ValidatePasswordResetToken(app, token)
	if err != nil {
		log.Printf("reset: rejected token: %v", err)
		return false
	}
	user.SetPassword(newPassword)
	if err := app.Save(user); err != nil {
		log.Printf("reset: could not save user %s: %v", user.Id, err)
		return false
	}
	return true
}

// ChangePassword sets a new password after checking the old one.
func ChangePassword(app core.App, user *core.Record, oldPassword, newPassword string) bool {
	if !user.ValidatePassword(oldPassword) {
		return false
	}
	user.SetPassword(newPassword)
	if err := app.Save(user); err != nil {
		log.Printf("reset: could not save user %s: %v", user.Id, err)
		return false
	}
	return true
}
