package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // used for ticket links in message bodies
}

// SMTPConfigFrom adapts the email section of the application config.
func SMTPConfigFrom(cfg *config.EmailConfig, baseURL string) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		BaseURL:     baseURL,
	}
}

// SMTPNotifier mails technicians when a ticket is assigned to them.
type SMTPNotifier struct {
	config SMTPConfig
	send   func(m *gomail.Message) error
	logger logger.Interface
}

func NewSMTPNotifier(cfg SMTPConfig, log logger.Interface) *SMTPNotifier {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &SMTPNotifier{
		config: cfg,
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		logger: log,
	}
}

func (s *SMTPNotifier) NotifyAssigned(ctx context.Context, notice ticket.AssignmentNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if notice.TechnicianEmail == "" {
		return fmt.Errorf("technician email is required")
	}

	link := fmt.Sprintf("%s/tickets/%d", s.config.BaseURL, notice.TicketID)
	subject := fmt.Sprintf("[Helpdesk #%d] Assigned to you: %s", notice.TicketID, notice.Title)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket #%d was assigned to you</h2>
			<p><strong>%s</strong></p>
			<p>Priority: %s<br>Status: %s<br>Assigned by: %s</p>
			<p><a href="%s">Open ticket</a></p>
		</body>
		</html>
	`, notice.TicketID, html.EscapeString(notice.Title), notice.Priority, notice.Status,
		html.EscapeString(notice.AssignedBy), link)

	plainBody := fmt.Sprintf(`
Ticket #%d was assigned to you

%s

Priority: %s
Status: %s
Assigned by: %s

%s
	`, notice.TicketID, notice.Title, notice.Priority, notice.Status, notice.AssignedBy, link)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetAddressHeader("To", notice.TechnicianEmail, notice.TechnicianName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("assignment notification sent",
		"ticket_id", notice.TicketID,
		"to", notice.TechnicianEmail,
	)
	return nil
}

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct {
	logger logger.Interface
}

func NewNoopNotifier(log logger.Interface) *NoopNotifier {
	return &NoopNotifier{logger: log}
}

func (n *NoopNotifier) NotifyAssigned(_ context.Context, notice ticket.AssignmentNotice) error {
	n.logger.Debugw("email disabled, skipping assignment notification",
		"ticket_id", notice.TicketID,
		"to", notice.TechnicianEmail,
	)
	return nil
}

// NewNotifier picks the SMTP notifier when a host is configured.
func NewNotifier(cfg *config.EmailConfig, baseURL string, log logger.Interface) ticket.AssignmentNotifier {
	if !cfg.Enabled() {
		return NewNoopNotifier(log)
	}
	return NewSMTPNotifier(SMTPConfigFrom(cfg, baseURL), log)
}
