package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BusinessInfo, salonun iletişim ve çalışma saatleri bilgisi.
// Singleton'dır — DB'de her zaman tek satır (id=1) bulunur.
//
// OpeningHours gün → saat aralığı map'idir ("mon" → "10:00-19:00",
// "sun" → "closed"). DB'de JSON text olarak saklanır.
type BusinessInfo struct {
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	Instagram    string            `json:"instagram"`
	OpeningHours map[string]string `json:"opening_hours"`
	About        string            `json:"about"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// validDays, opening_hours map'inde izin verilen key'ler.
var validDays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// UpdateBusinessInfoRequest, admin panelden işletme bilgisi güncellemesi —
// partial update.
type UpdateBusinessInfoRequest struct {
	Name         *string            `json:"name"`
	Address      *string            `json:"address"`
	Phone        *string            `json:"phone"`
	Email        *string            `json:"email"`
	Instagram    *string            `json:"instagram"`
	OpeningHours *map[string]string `json:"opening_hours"`
	About        *string            `json:"about"`
}

// Validate, UpdateBusinessInfoRequest geçerlilik kontrolü.
func (r *UpdateBusinessInfoRequest) Validate() error {
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
		if *r.Email != "" && !emailRegex.MatchString(*r.Email) {
			return fmt.Errorf("invalid email format")
		}
	}
	if r.OpeningHours != nil {
		for day := range *r.OpeningHours {
			if !validDays[day] {
				return fmt.Errorf("invalid day key: %s", day)
			}
		}
	}
	return nil
}

// MarshalOpeningHours, map'i DB'de saklanacak JSON text'e çevirir.
func MarshalOpeningHours(hours map[string]string) (string, error) {
	if hours == nil {
		return "{}", nil
	}
	b, err := json.Marshal(hours)
	if err != nil {
		return "", fmt.Errorf("failed to marshal opening hours: %w", err)
	}
	return string(b), nil
}

// UnmarshalOpeningHours, DB'den okunan JSON text'i map'e çevirir.
func UnmarshalOpeningHours(raw string) (map[string]string, error) {
	hours := make(map[string]string)
	if raw == "" {
		return hours, nil
	}
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opening hours: %w", err)
	}
	return hours, nil
}
