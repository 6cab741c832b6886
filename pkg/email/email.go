// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// Sender interface'i ile email gönderim detayları soyutlanır.
// Şu anki implementasyon Resend API kullanır — farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da
// değiştirmek yeterli.
//
// Bu paket dışarıya iki şey sunar:
// 1. Sender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
package email

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/resend/resend-go/v3"
)

// Sender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend
// implementasyonuna değil — testlerde fake Sender kullanılır.
type Sender interface {
	// SendPasswordReset, admin'e şifre sıfırlama linki içeren email gönderir.
	// token: plaintext reset token (linke gömülür, DB'de hash'i saklanır).
	SendPasswordReset(ctx context.Context, toEmail, token string) error

	// SendBookingConfirmation, rezervasyonu onaylanan müşteriye bilgi emaili gönderir.
	SendBookingConfirmation(ctx context.Context, toEmail, customerName, treatmentName, slot string) error

	// SendContactNotification, iletişim formundan gelen mesajı salon
	// inbox'ına iletir.
	SendContactNotification(ctx context.Context, salonEmail, fromName, fromEmail, message string) error
}

// NewLogSender, email'leri gerçekten göndermek yerine log'a yazan Sender döner.
// RESEND_API_KEY tanımlı olmayan lokal geliştirme ortamları için.
func NewLogSender() Sender {
	return &logSender{}
}

// logSender, development fallback — hiçbir şey göndermez, sadece loglar.
type logSender struct{}

func (s *logSender) SendPasswordReset(_ context.Context, toEmail, token string) error {
	log.Printf("[email] (dev) password reset for %s, token=%s", toEmail, token)
	return nil
}

func (s *logSender) SendBookingConfirmation(_ context.Context, toEmail, customerName, treatmentName, slot string) error {
	log.Printf("[email] (dev) booking confirmation to %s: %s, %s at %s", toEmail, customerName, treatmentName, slot)
	return nil
}

func (s *logSender) SendContactNotification(_ context.Context, salonEmail, fromName, fromEmail, _ string) error {
	log.Printf("[email] (dev) contact notification to %s from %s <%s>", salonEmail, fromName, fromEmail)
	return nil
}

// resendSender, Resend API ile email gönderen Sender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@veloranails.com)
	appURL    string // Public site URL'i (ör: https://veloranails.com)
}

// NewResendSender, Resend API client'ı ile yeni bir Sender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
// appURL: Sitenin public URL'i — reset linklerinde kullanılır.
func NewResendSender(apiKey, fromEmail, appURL string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendPasswordReset, şifre sıfırlama email'i gönderir.
//
// Link format: {appURL}/admin/reset-password?token={token}
// Token email'de plaintext olarak bulunur (DB'de SHA256 hash saklanır).
func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/admin/reset-password?token=%s", s.appURL, token)

	body := fmt.Sprintf(`
		<h2 style="color:#2d2a32;">Password Reset Request</h2>
		<p>We received a request to reset your Velora admin password.
		Click the button below to choose a new password.</p>
		<p><a href="%s" style="background-color:#c98bb9;color:#ffffff;
			padding:12px 32px;border-radius:6px;text-decoration:none;
			font-weight:600;">Reset Password</a></p>
		<p style="color:#8e8a93;font-size:13px;">This link will expire in
		20 minutes. If you didn't request a reset, you can safely ignore
		this email.</p>`, resetLink)

	return s.send(ctx, toEmail, "Reset Your Password — Velora Nails", body)
}

// SendBookingConfirmation, onaylanan rezervasyon için müşteriye email gönderir.
func (s *resendSender) SendBookingConfirmation(ctx context.Context, toEmail, customerName, treatmentName, slot string) error {
	body := fmt.Sprintf(`
		<h2 style="color:#2d2a32;">Your appointment is confirmed 💅</h2>
		<p>Hi %s,</p>
		<p>Your <strong>%s</strong> appointment is confirmed for
		<strong>%s</strong>.</p>
		<p>If you need to change or cancel, just give us a call — the
		number is on <a href="%s">our website</a>.</p>
		<p>See you soon!<br>Velora Nails</p>`,
		html.EscapeString(customerName),
		html.EscapeString(treatmentName),
		html.EscapeString(slot),
		s.appURL)

	return s.send(ctx, toEmail, "Appointment Confirmed — Velora Nails", body)
}

// SendContactNotification, iletişim formu mesajını salon inbox'ına iletir.
// Müşteri inputu HTML'e gömüldüğü için escape edilir.
func (s *resendSender) SendContactNotification(ctx context.Context, salonEmail, fromName, fromEmail, message string) error {
	body := fmt.Sprintf(`
		<h2 style="color:#2d2a32;">New contact message</h2>
		<p><strong>From:</strong> %s &lt;%s&gt;</p>
		<blockquote style="border-left:3px solid #c98bb9;padding-left:12px;
			color:#2d2a32;">%s</blockquote>
		<p style="color:#8e8a93;font-size:13px;">Sent from the website
		contact form.</p>`,
		html.EscapeString(fromName),
		html.EscapeString(fromEmail),
		html.EscapeString(message))

	return s.send(ctx, salonEmail, fmt.Sprintf("Contact form: %s", fromName), body)
}

// send, ortak HTML şablonuyla email'i Resend üzerinden gönderir.
func (s *resendSender) send(ctx context.Context, to, subject, body string) error {
	htmlDoc := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#faf7fa;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#faf7fa;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#c98bb9;font-size:24px;margin:0 0 16px 0;">Velora Nails</h1>
              %s
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, body)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Velora Nails <%s>", s.fromEmail),
		To:      []string{to},
		Subject: subject,
		Html:    htmlDoc,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
