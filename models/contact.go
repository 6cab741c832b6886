package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ContactMessage, public sitedeki iletişim formundan gelen bir mesajı
// temsil eder.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContactMessageRequest, iletişim formu isteği.
type CreateContactMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate, CreateContactMessageRequest geçerlilik kontrolü.
func (r *CreateContactMessageRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 100 {
		return fmt.Errorf("name must be between 2 and 100 characters")
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	r.Message = strings.TrimSpace(r.Message)
	msgLen := utf8.RuneCountInString(r.Message)
	if msgLen < 10 || msgLen > 4000 {
		return fmt.Errorf("message must be between 10 and 4000 characters")
	}
	return nil
}
