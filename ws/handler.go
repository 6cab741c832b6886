package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/seline/velora/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// Neden services.AuthService yerine kendi interface'imiz?
// Circular dependency önlemek için: services paketi ws.EventPublisher
// kullanıyor; ws de services'i import etseydi döngü oluşurdu.
// Handler'ın tüm AuthService metodlarına da ihtiyacı yok — sadece
// ValidateAccessToken yeterli (Interface Segregation).
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket'e yükseltir.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: dashboard ile API aynı origin'den servis edilir;
	// cross-origin el sıkışmaları reddedilmez çünkü token zaten doğrulanıyor.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı
// Hub'a kaydeder.
//
// Tarayıcı WebSocket API'si custom header gönderemez — access token
// query parameter olarak taşınır:
//
//	ws://server/api/admin/ws?token=JWT_TOKEN
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for admin %s: %v", claims.AdminID, err)
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		adminID: claims.AdminID,
		send:    make(chan []byte, sendBufferSize),
	}

	h.hub.register <- client

	// İlk event: ready — dashboard bağlantının canlı olduğunu bilir.
	client.sendEvent(Event{Op: OpReady})

	// WritePump ayrı goroutine'de; ReadPump bu goroutine'de bloklar —
	// handler dönerse HTTP bağlantısı kapanır.
	go client.WritePump()
	client.ReadPump()
}
