package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

var ErrInvalidHeader = errors.New("mail header contains a line break")

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of delivering them. It is
// used in development and whenever SMTP is not configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("dev_email", "to", msg.To, "subject", msg.Subject, "body", msg.Text)
	return nil
}

const defaultSMTPTimeout = 10 * time.Second

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// Timeout bounds a whole delivery, dial included. Zero means 10s.
	Timeout time.Duration
}

// SMTPMailer delivers messages through an SMTP relay, upgrading to TLS when
// the server offers STARTTLS.
type SMTPMailer struct {
	host    string
	from    string
	timeout time.Duration
	opts    []mail.Option
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithDialContextFunc(dialWithDeadline),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	return &SMTPMailer{
		host:    cfg.Host,
		from:    cfg.From,
		timeout: timeout,
		opts:    opts,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	em, err := m.build(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.host, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, em); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// build renders msg as multipart/alternative when both bodies are set.
func (m *SMTPMailer) build(msg Message) (*mail.Msg, error) {
	for _, h := range []string{m.from, msg.To, msg.Subject} {
		if strings.ContainsAny(h, "\r\n") {
			return nil, ErrInvalidHeader
		}
	}

	em := mail.NewMsg()
	if err := em.From(m.from); err != nil {
		return nil, fmt.Errorf("mail from: %w", err)
	}
	if err := em.To(msg.To); err != nil {
		return nil, fmt.Errorf("mail to: %w", err)
	}
	em.Subject(msg.Subject)
	em.SetDate()

	switch {
	case msg.Text != "" && msg.HTML != "":
		em.SetBodyString(mail.TypeTextPlain, msg.Text)
		em.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		em.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		em.SetBodyString(mail.TypeTextPlain, msg.Text)
	}
	return em, nil
}

// dialWithDeadline pins the connection deadline to the dial context so a
// server that accepts and then stays silent cannot stall the SMTP greeting.
func dialWithDeadline(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return conn, nil
}
