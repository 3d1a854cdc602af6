package email

import (
	"fmt"

	"github.com/wneessen/go-mail"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional OTP mail over SMTP.
type Mailer struct {
	cfg Config
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendVerificationCode emails a registration verification code.
func (m *Mailer) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf(`Welcome to Project Wayfinder!

Please verify your email address to complete your registration.

Your Verification Code: %s

This code will expire in 10 minutes.

If you didn't create an account with us, please ignore this email.

Best regards,
The Project Wayfinder Team`, code)

	return m.send(to, "Verify Your Account - Project Wayfinder", body)
}

// SendLoginCode emails a login one-time code.
func (m *Mailer) SendLoginCode(to, code string) error {
	body := fmt.Sprintf(`Your Project Wayfinder login code is: %s

This code will expire in 10 minutes.

If you didn't request this code, please ignore this email.`, code)

	return m.send(to, "Your Login Code - Project Wayfinder", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
