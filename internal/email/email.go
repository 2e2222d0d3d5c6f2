// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

// Config holds email configuration
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FromName    string
	UseTLS      bool
	FrontendURL string
}

// Service handles email sending
type Service struct {
	config         *Config
	memberAddedTpl *template.Template
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	return &Service{
		config: config,
		memberAddedTpl: template.Must(template.New("member_added").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4f46e5; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>You were added to a project</h2>
    </div>
    <div class="content">
        <p>Hello,</p>
        <p><strong>{{.InvitedBy}}</strong> added you to the project <strong>{{.ProjectName}}</strong>.</p>
        <p>Sign in to see its board and tasks.</p>
        {{if .AppURL}}<p><a href="{{.AppURL}}/dashboard">Open your dashboard</a></p>{{end}}
    </div>
    <div class="footer">
        <p>This email was sent from TeamTask</p>
    </div>
</div>
</body>
</html>
`)),
	}
}

// MemberAddedData holds data for the member-added email
type MemberAddedData struct {
	ProjectName string
	InvitedBy   string
	AppURL      string
}

// SendMemberAdded notifies a user by email that they were added to a project.
func (s *Service) SendMemberAdded(to, projectName, invitedBy string) error {
	var body bytes.Buffer
	if err := s.memberAddedTpl.Execute(&body, MemberAddedData{
		ProjectName: projectName,
		InvitedBy:   invitedBy,
		AppURL:      s.config.FrontendURL,
	}); err != nil {
		return fmt.Errorf("template error: %w", err)
	}
	return s.send(to, fmt.Sprintf("You were added to %s", projectName), body.String())
}

func (s *Service) send(to, subject, htmlBody string) error {
	if s.config.Host == "" {
		log.Println("Email not configured, skipping send")
		return nil
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{ServerName: s.config.Host}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("TLS dial error: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			return fmt.Errorf("SMTP client error: %w", err)
		}
		defer client.Close()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("auth error: %w", err)
		}
		if err = client.Mail(s.config.From); err != nil {
			return fmt.Errorf("mail error: %w", err)
		}
		if err = client.Rcpt(to); err != nil {
			return fmt.Errorf("rcpt error: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("data error: %w", err)
		}
		if _, err = w.Write(msg.Bytes()); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("close error: %w", err)
		}
		return client.Quit()
	}

	return smtp.SendMail(addr, auth, s.config.From, []string{to}, msg.Bytes())
}
