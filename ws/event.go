// Package ws, admin dashboard'a gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Server → Client iletilen mesaj formatı
//
// Event akışı:
// 1. Müşteri randevu oluşturur → HTTP POST → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır
// 3. Hub, event'i bağlı tüm admin client'lara iletir
// 4. Dashboard anında yeni randevuyu gösterir — sayfa yenilemeye gerek yok
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "booking_create", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq: Her outbound event'e verilen artan sayı. Frontend eksik event
// tespit etmek için seq'i takip eder — seq 5'ten sonra 7 gelirse
// 6 kaybolmuş demektir, dashboard tam listeyi yeniden çeker.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	OpBookingCreate = "booking_create" // Yeni randevu isteği geldi
	OpBookingUpdate = "booking_update" // Randevu durumu değişti
	OpBookingDelete = "booking_delete" // Randevu silindi

	OpContactCreate = "contact_create" // Yeni iletişim mesajı geldi
	OpContactUpdate = "contact_update" // Mesaj okundu olarak işaretlendi
)
