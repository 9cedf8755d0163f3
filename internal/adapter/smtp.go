package adapter

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	addr     string
	host     string
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
	logger   *logger.Logger
}

// NewSMTPMailer constructs a [Mailer] relaying through cfg.Host:cfg.Port.
// PLAIN auth is used when a username is configured.
func NewSMTPMailer(cfg config.SMTP, logger *logger.Logger) Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &smtpMailer{
		addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		host:     cfg.Host,
		from:     cfg.From,
		auth:     auth,
		sendMail: smtp.SendMail,
		logger:   logger,
	}
}

// Send implements [Mailer]. net/smtp has no context support, so ctx is
// only checked before the relay is contacted.
func (m *smtpMailer) Send(ctx context.Context, msg models.MailMessage) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	from := msg.From
	if from == "" {
		from = m.from
	}

	if err := m.sendMail(m.addr, m.auth, from, []string{msg.To}, composeMessage(from, msg)); err != nil {
		log.Err(err).Str("func", "*smtpMailer.Send").Str("to", msg.To).Msg("error sending mail")
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	log.Debug().Str("func", "*smtpMailer.Send").Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}

// headerSanitizer strips CR and LF so user-controlled values cannot inject
// headers.
var headerSanitizer = strings.NewReplacer("\r", "", "\n", "")

func composeMessage(from string, msg models.MailMessage) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerSanitizer.Replace(from) + "\r\n")
	b.WriteString("To: " + headerSanitizer.Replace(msg.To) + "\r\n")
	b.WriteString("Subject: " + headerSanitizer.Replace(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return []byte(b.String())
}
