package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/redis/go-redis/v9"
)

// roundRobinKey is the shared counter used to spread outbound mail across
// the configured SMTP accounts. Redis INCR keeps the rotation atomic across
// processes.
const roundRobinKey = "mail:round_robin_counter"

// Account holds the credentials of one SMTP sender account.
type Account struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends a single message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// logMailer logs messages instead of delivering them. Used when no SMTP
// accounts are configured, typically in local development.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer builds a Mailer that only logs outbound messages.
func NewLogMailer(logger *slog.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info("mail suppressed (no smtp accounts configured)",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}

// Sender rotates through a pool of SMTP accounts so no single account hits
// its daily send quota.
type Sender struct {
	accounts []Account
	rdb      *redis.Client
}

// NewSender builds a Sender over the configured account pool.
func NewSender(accounts []Account, rdb *redis.Client) (*Sender, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("mail: at least one smtp account is required")
	}
	return &Sender{accounts: accounts, rdb: rdb}, nil
}

// nextAccount picks the account for the next send. When redis is unreachable
// the first account is used so mail still goes out.
func (s *Sender) nextAccount(ctx context.Context) Account {
	n, err := s.rdb.Incr(ctx, roundRobinKey).Result()
	if err != nil {
		return s.accounts[0]
	}
	return s.accounts[int(n)%len(s.accounts)]
}

// Send delivers one message through the next account in the rotation.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	account := s.nextAccount(ctx)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", account.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", account.Host, account.Port)
	auth := smtp.PlainAuth("", account.Username, account.Password, account.Host)
	if err := smtp.SendMail(addr, auth, account.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: send via %s failed: %w", account.Username, err)
	}
	return nil
}
