package models

import "time"

// Session, bir admin'in aktif refresh token oturumunu temsil eder.
//
// Admin başına TEK satır vardır (admin_id UNIQUE): her login ve her
// refresh mevcut satırın üzerine yazar. Refresh token plaintext olarak
// SAKLANMAZ — argon2id hash'i saklanır. Sunulan token hash ile
// karşılaştırılır; eşleşmezse oturum yok demektir.
//
// Tek satır modelinin sonucu: bir refresh token kullanıldığı anda
// hash'in üzerine yenisi yazılır — eski token kalıcı olarak geçersizdir
// (rotation). Çalınan bir token en fazla bir kez iş görür.
type Session struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	TokenHash string    `json:"-"` // API'ye gönderilmez
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
