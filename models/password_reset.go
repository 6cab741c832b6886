// Package models — Password reset token ve ilgili request struct'ları.
//
// Token plaintext olarak SAKLANMAZ — SHA256 hash'i saklanır.
// Bu sayede DB sızsa bile token'lar kullanılamaz.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// PasswordResetToken, şifre sıfırlama token'ının DB kaydı.
//
// TokenHash: Token'ın SHA256 hash'i (hex encoded, 64 karakter).
// Plaintext token admin'e email ile gönderilir; doğrulamada gelen token
// hash'lenip TokenHash ile karşılaştırılır.
// Used: token tek kullanımlıktır — başarılı reset sonrası işaretlenir.
type PasswordResetToken struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// ForgotPasswordRequest, "şifremi unuttum" isteği.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate, ForgotPasswordRequest geçerlilik kontrolü.
func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ResetPasswordRequest, şifre sıfırlama isteği.
// Token: email'deki link'ten alınan plaintext token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Validate, ResetPasswordRequest geçerlilik kontrolü.
func (r *ResetPasswordRequest) Validate() error {
	if r.Token == "" {
		return fmt.Errorf("token is required")
	}
	if utf8.RuneCountInString(r.NewPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
