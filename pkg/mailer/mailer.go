package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends transactional email over SMTP. If no host is configured the
// mailer is disabled and sends become no-ops.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

// New creates a new Mailer
func New(host, port, username, password, from, fromName string) *Mailer {
	if host == "" {
		log.Println("⚠️  SMTP disabled: no host configured")
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

// SendWelcome sends a welcome email to a newly registered user
func (m *Mailer) SendWelcome(to, firstName string) error {
	subject := "Welcome to Whereabout"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Add some friends and start sharing your whereabouts.\n\nThe Whereabout team", firstName)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.host == "" {
		return nil
	}

	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
