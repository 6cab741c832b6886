// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern: Handler (HTTP) ile Repository (DB) arasında
// oturan katmandır. Tüm iş kuralları burada yaşar — şifre hash'leme,
// JWT üretimi, yetki kontrolleri.
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/cache"
	"github.com/seline/velora/pkg/email"
	"github.com/seline/velora/pkg/passhash"
	"github.com/seline/velora/repository"
)

// Reset token ve cooldown sabitleri.
const (
	resetTokenTTL = 20 * time.Minute
	resetCooldown = 90 * time.Second
)

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	// Refresh, sunulan refresh token karşılığında YENİ bir token çifti üretir.
	// Eski refresh token bu çağrıyla kalıcı olarak geçersizleşir (rotation).
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
	// Logout, admin'in oturumunu siler. Oturum zaten yoksa da başarılıdır —
	// idempotent.
	Logout(ctx context.Context, adminID string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	Me(ctx context.Context, adminID string) (*models.Admin, error)
	ChangePassword(ctx context.Context, adminID string, req *models.ChangePasswordRequest) error
	// ForgotPassword her zaman başarı döner — email'in kayıtlı olup
	// olmadığı dışarı sızmaz (enumeration koruması).
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// AuthTokens, login/register/refresh sonrası dönen token çifti.
type AuthTokens struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Admin        models.Admin `json:"admin"`
}

// authService, AuthService interface'inin implementasyonu.
//
// İki ayrı secret: access ve refresh token'lar FARKLI key'lerle imzalanır.
// Bir access token refresh endpoint'inde (veya tersi) asla doğrulanamaz.
type authService struct {
	adminRepo     repository.AdminRepository
	sessionRepo   repository.SessionRepository
	resetRepo     repository.PasswordResetRepository
	hasher        *passhash.Hasher
	mailer        email.Sender
	cooldowns     *cache.TTLCache[string, time.Time]
	accessSecret  []byte
	refreshSecret []byte
	accessExp     time.Duration
	refreshExp    time.Duration
}

// NewAuthService, constructor.
func NewAuthService(
	adminRepo repository.AdminRepository,
	sessionRepo repository.SessionRepository,
	resetRepo repository.PasswordResetRepository,
	hasher *passhash.Hasher,
	mailer email.Sender,
	accessSecret string,
	refreshSecret string,
	accessExpMinutes int,
	refreshExpDays int,
) AuthService {
	return &authService{
		adminRepo:     adminRepo,
		sessionRepo:   sessionRepo,
		resetRepo:     resetRepo,
		hasher:        hasher,
		mailer:        mailer,
		cooldowns:     cache.New[string, time.Time](resetCooldown, time.Minute),
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExp:     time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:    time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

// Register, yeni admin kaydı oluşturur ve token çifti döner.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	return s.generateTokens(ctx, admin)
}

// Login, admin girişi yapar.
//
// Email bulunamadı ve şifre yanlış durumları AYNI hatayı döner —
// hangi email'lerin kayıtlı olduğu deneme-yanılma ile öğrenilemez.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(req.Password, admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	// Pasif hesap da AYNI generic hatayı alır — hesabın var olduğu bile sızmaz.
	if !ok || !admin.IsActive {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	return s.generateTokens(ctx, admin)
}

// Refresh, refresh token'ı doğrulayıp YENİ bir çift üretir.
//
// Tüm başarısızlık yolları (imza geçersiz, oturum yok, süresi dolmuş,
// hash uyuşmuyor) AYNI generic hatayı döner — çalınan bir token'la
// hangi aşamada takıldığı anlaşılamaz.
//
// Rotation: generateTokens içindeki Upsert eski hash'in üzerine yazar.
// Aynı refresh token ikinci kez sunulursa hash artık uyuşmaz ve 401 döner.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
	}

	session, err := s.sessionRepo.GetByAdminID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		if delErr := s.sessionRepo.DeleteByAdminID(ctx, session.AdminID); delErr != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", delErr)
		}
		return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
	}

	// Sunulan token'ın hash'i saklanan hash ile uyuşuyor mu?
	// JWT imzası geçerli olsa bile rotation sonrası eski token burada elenir.
	ok, err := s.hasher.Verify(refreshToken, session.TokenHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify refresh token: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
	}

	admin, err := s.adminRepo.GetByID(ctx, session.AdminID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
	}

	return s.generateTokens(ctx, admin)
}

// Logout, admin'in oturum satırını siler — refresh token kullanılamaz olur.
// Elde dolaşan access token'ları doğal süresinde ölür (dakika mertebesi).
func (s *authService) Logout(ctx context.Context, adminID string) error {
	return s.sessionRepo.DeleteByAdminID(ctx, adminID)
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	claims, err := s.parseToken(tokenString, s.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}
	return claims, nil
}

// Me, oturum açmış admin'in profilini döner.
func (s *authService) Me(ctx context.Context, adminID string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	admin.PasswordHash = ""
	return admin, nil
}

// ChangePassword, oturum açmış admin'in şifresini değiştirir.
func (s *authService) ChangePassword(ctx context.Context, adminID string, req *models.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(req.CurrentPassword, admin.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}

	if req.CurrentPassword == req.NewPassword {
		return fmt.Errorf("%w: new password must be different from current password", pkg.ErrBadRequest)
	}

	newHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	return s.adminRepo.UpdatePassword(ctx, adminID, newHash)
}

// ForgotPassword, reset token üretip email'ler.
//
// HER ZAMAN nil döner (iç hata hariç) — "bu email kayıtlı değil"
// bilgisi asla dışarı sızmaz. Cooldown penceresi içindeki tekrar
// istekler de sessizce yutulur.
func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Fırsat temizliği — süresi dolmuş token'lar her istekte silinir.
	if err := s.resetRepo.DeleteExpired(ctx); err != nil {
		return err
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil // kayıtlı değil — yine başarı
		}
		return err
	}

	// Cooldown: aynı hesaba 90 saniyede bir token üretilir.
	if _, onCooldown := s.cooldowns.Get(admin.ID); onCooldown {
		return nil
	}
	s.cooldowns.Set(admin.ID, time.Now())

	// Eski token'ları geçersiz kıl — aynı anda tek geçerli reset linki olur.
	if err := s.resetRepo.DeleteByAdminID(ctx, admin.ID); err != nil {
		return err
	}

	// Plaintext token sadece email'de yaşar; DB'ye SHA256 hash'i yazılır.
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	plainToken := hex.EncodeToString(tokenBytes)
	tokenHash := sha256.Sum256([]byte(plainToken))

	record := &models.PasswordResetToken{
		AdminID:   admin.ID,
		TokenHash: hex.EncodeToString(tokenHash[:]),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, admin.Email, plainToken); err != nil {
		// Email başarısız oldu ama caller'a generic başarı dönüyoruz —
		// hata sadece loglanır, enumeration sinyali verilmez.
		log.Printf("[auth] failed to send reset email: %v", err)
	}

	return nil
}

// ResetPassword, email'deki token ile yeni şifre belirler.
// Token tek kullanımlıktır; başarılı reset tüm oturumları düşürür.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	tokenHash := sha256.Sum256([]byte(req.Token))
	record, err := s.resetRepo.GetByTokenHash(ctx, hex.EncodeToString(tokenHash[:]))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	if record.Used || time.Now().After(record.ExpiresAt) {
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
	}

	newHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, record.AdminID, newHash); err != nil {
		return err
	}

	if err := s.resetRepo.MarkUsed(ctx, record.ID); err != nil {
		return err
	}

	// Şifre değişti — mevcut refresh oturumu da düşsün.
	return s.sessionRepo.DeleteByAdminID(ctx, record.AdminID)
}

// ─── Private Helpers ───

// generateTokens, access + refresh çifti üretir ve refresh'in argon2id
// hash'ini oturum satırına upsert eder.
//
// Refresh token da imzalı bir JWT'dir ama uzun süreli asset DB'deki
// hash'tir: JWT imzası "bu token bizden çıkmış" der, hash karşılaştırması
// "bu token HALA geçerli olan" der. İkisi birden geçmeli.
func (s *authService) generateTokens(ctx context.Context, admin *models.Admin) (*AuthTokens, error) {
	now := time.Now()

	accessClaims := &models.TokenClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "velora",
		},
	}
	accessString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	// jti (ID): aynı saniyede üretilen iki refresh token bile farklı olsun —
	// rotation'da yeni token eskisiyle asla çakışmaz.
	refreshClaims := &models.TokenClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "velora",
			ID:        uuid.New().String(),
		},
	}
	refreshString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	tokenHash, err := s.hasher.Hash(refreshString)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session := &models.Session{
		AdminID:   admin.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.refreshExp),
	}
	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, err
	}

	admin.PasswordHash = ""

	return &AuthTokens{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		Admin:        *admin,
	}, nil
}

// parseToken, HS256 imzalı bir JWT'yi verilen secret ile doğrular.
func (s *authService) parseToken(tokenString string, secret []byte) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
