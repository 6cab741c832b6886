package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// BookingStatus, randevunun yaşam döngüsündeki durumunu temsil eder.
// Go'da enum yoktur — typed constant'lar kullanılır.
type BookingStatus string

// İzin verilen BookingStatus değerleri.
const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ValidTransition, status geçişinin izinli olup olmadığını kontrol eder.
//
// pending   → confirmed | cancelled
// confirmed → completed | cancelled
// cancelled / completed → terminal, geçiş yok
func ValidTransition(from, to BookingStatus) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCompleted || to == BookingStatusCancelled
	default:
		return false
	}
}

// Booking, bir müşteri randevusunu temsil eder.
//
// CustomerPhone DB'de AES-GCM ile şifreli saklanır — bu struct her zaman
// çözülmüş (plaintext) halini taşır. Şifreleme/çözme repository'nin değil
// service katmanının işidir; repository sadece verilen string'i yazar/okur.
type Booking struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone"`
	TreatmentID   *string       `json:"treatment_id"` // nullable: hizmet silinmiş olabilir
	TreatmentName string        `json:"treatment_name,omitempty"`
	SlotAt        time.Time     `json:"slot_at"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CreateBookingRequest, public siteden gelen randevu isteği.
type CreateBookingRequest struct {
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	TreatmentID   string    `json:"treatment_id"`
	SlotAt        time.Time `json:"slot_at"`
	Notes         string    `json:"notes"`
}

// Validate, CreateBookingRequest geçerlilik kontrolü.
func (r *CreateBookingRequest) Validate() error {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	nameLen := utf8.RuneCountInString(r.CustomerName)
	if nameLen < 2 || nameLen > 100 {
		return fmt.Errorf("customer name must be between 2 and 100 characters")
	}

	r.CustomerEmail = strings.ToLower(strings.TrimSpace(r.CustomerEmail))
	if !emailRegex.MatchString(r.CustomerEmail) {
		return fmt.Errorf("invalid email format")
	}

	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	phoneLen := utf8.RuneCountInString(r.CustomerPhone)
	if phoneLen < 5 || phoneLen > 32 {
		return fmt.Errorf("phone must be between 5 and 32 characters")
	}

	if r.TreatmentID == "" {
		return fmt.Errorf("treatment_id is required")
	}
	if r.SlotAt.IsZero() {
		return fmt.Errorf("slot_at is required")
	}
	if r.SlotAt.Before(time.Now()) {
		return fmt.Errorf("slot_at must be in the future")
	}
	if utf8.RuneCountInString(r.Notes) > 1000 {
		return fmt.Errorf("notes must be at most 1000 characters")
	}
	return nil
}

// UpdateBookingStatusRequest, admin panelden randevu durumu değiştirme isteği.
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status"`
}

// Validate, UpdateBookingStatusRequest geçerlilik kontrolü.
// Geçişin izinli olup olmadığı mevcut status'a bağlıdır — o kontrol
// service katmanında yapılır, burada sadece değerin tanımlı olduğu doğrulanır.
func (r *UpdateBookingStatusRequest) Validate() error {
	switch r.Status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", r.Status)
	}
}
