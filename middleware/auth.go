// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// "next" zincirdeki bir sonraki handler'dır. Middleware kendi işini yapar
// (token doğrula), sonra next'i çağırır. Hata varsa next çağrılmaz —
// request burada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/seline/velora/handlers"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/repository"
	"github.com/seline/velora/services"
)

// AuthMiddleware, JWT access token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	adminRepo   repository.AdminRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, adminRepo repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		adminRepo:   adminRepo,
	}
}

// Require, access token zorunlu kılan middleware.
//
// 1. "Authorization: Bearer <token>" header'ını oku
// 2. AuthService.ValidateAccessToken ile doğrula (access secret)
// 3. Admin'i DB'den getir — token geçerli ama hesap silinmiş olabilir
// 4. Context'e ekle, next'i çağır
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		admin, err := m.adminRepo.GetByID(r.Context(), claims.AdminID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found")
			return
		}
		// Token henüz süresi dolmamış olsa bile pasif hesap panele giremez.
		if !admin.IsActive {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found")
			return
		}

		// Hash context'te taşınmaz.
		admin.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.AdminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
