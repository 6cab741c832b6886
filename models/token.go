package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT token'ın payload'ındaki veriler.
//
// Hem access hem refresh token aynı claim yapısını taşır — fark imza
// secret'ı ve süredir. Server her request'te token'ı doğrular;
// DB'ye gitmeden admin'in kim olduğunu bilir.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, middleware, ws) kullanır — circular dependency önlenir.
type TokenClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPair, başarılı login/refresh sonucunda dönen ikili.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
