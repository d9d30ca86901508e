package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"gopkg.in/gomail.v2"

	"tech-shop/config"
)

// Mailer sends transactional mail. Callers treat delivery as best-effort.
type Mailer interface {
	SendResetCodeEmail(to, name, code string) error
	SendOrderConfirmationEmail(to string, orderID int, total float64) error
}

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService() (*EmailService, error) {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	return &EmailService{dialer: dialer, from: cfg.SMTPFrom}, nil
}

// GenerateResetCode returns a 5-digit one-time code.
func GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "00000"
	}
	return fmt.Sprintf("%d", 10000+n.Int64())
}

func (s *EmailService) SendResetCodeEmail(to, name, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset Code - Tech Shop")

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #2563eb; text-align: center; }
        .code-box { background-color: #eff6ff; border: 2px dashed #2563eb; padding: 20px; text-align: center; margin: 30px 0; border-radius: 8px; }
        .code { font-size: 36px; font-weight: bold; color: #2563eb; letter-spacing: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Tech Shop</div>
        <h2>Password Reset Request</h2>
        <p>Hello %s,</p>
        <p>You have requested to reset your password. Use the following code to proceed:</p>
        <div class="code-box">
            <div class="code">%s</div>
        </div>
        <p><strong>This code will expire in 10 minutes.</strong></p>
        <p>If you did not request a password reset, please ignore this email.</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, name, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) SendOrderConfirmationEmail(to string, orderID int, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%d - Tech Shop", orderID))

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #2563eb; text-align: center; }
        .order-box { background-color: #eff6ff; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Tech Shop</div>
        <h2>Order Confirmation</h2>
        <p>Thank you for your order!</p>
        <div class="order-box">
            <p><strong>Order Number:</strong> #%d</p>
            <p><strong>Total Amount:</strong> $%.2f</p>
        </div>
        <p>Your order has been received and is being processed. We'll notify you when it ships.</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, orderID, total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
