package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type IMailService interface {
	SendMailToNotifyUser(to, subject, body string) error
	SendMailToResetPassword(to, otp string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	RequireTLS bool

	AppName string
}

type EmailData struct {
	Title   string
	Intro   string
	Code    string
	AppName string
	Year    int
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	htmlTpl := template.Must(template.New("html").Parse(baseHTMLTemplate))
	textTpl := template.Must(template.New("text").Parse(plainTextTemplate))

	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: htmlTpl,
		textTpl: textTpl,
	}, nil
}

func (s *smtpMailService) SendMailToNotifyUser(to, subject, body string) error {
	html, text, err := s.renderEmail(EmailData{
		Title:   subject,
		Intro:   body,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendMailToResetPassword(to, otp string) error {
	subject := "Reset your password"

	html, text, err := s.renderEmail(EmailData{
		Title:   subject,
		Intro:   "We received a request to reset your password. Enter the code below in the app to continue. If you didn't request this, you can safely ignore this email.",
		Code:    otp,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) renderEmail(data EmailData) (string, string, error) {
	var htmlBuf bytes.Buffer
	if err := s.htmlTpl.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}

	var textBuf bytes.Buffer
	if err := s.textTpl.Execute(&textBuf, data); err != nil {
		return "", "", err
	}

	return htmlBuf.String(), textBuf.String(), nil
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	from := s.cfg.From
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	boundary := "dreamoracle-alt-boundary"
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)
	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", boundary, textBody)
	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", boundary, htmlBody)
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		return s.sendSMTPS(addr, auth, from, to, []byte(msg.String()))
	}
	return s.sendStartTLS(addr, auth, from, to, []byte(msg.String()))
}

func (s *smtpMailService) sendStartTLS(addr string, auth smtp.Auth, from, to string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("smtp server %s does not support STARTTLS", s.cfg.Host)
	}

	if err := client.Auth(auth); err != nil {
		return err
	}
	return s.finishSend(client, from, to, msg)
}

func (s *smtpMailService) sendSMTPS(addr string, auth smtp.Auth, from, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}

	host, _, _ := net.SplitHostPort(addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	return s.finishSend(client, from, to, msg)
}

func (s *smtpMailService) finishSend(client *smtp.Client, from, to string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

const baseHTMLTemplate = `<!DOCTYPE html>
<html>
  <body style="margin:0;padding:0;background:#f4f1fa;font-family:Arial,Helvetica,sans-serif;">
    <div style="max-width:520px;margin:24px auto;background:#ffffff;border-radius:8px;padding:32px;">
      <h1 style="color:#4a3b78;font-size:20px;margin-top:0;">{{.Title}}</h1>
      <p style="color:#444;font-size:14px;line-height:1.6;">{{.Intro}}</p>
      {{if .Code}}
      <p style="text-align:center;margin:28px 0;">
        <span style="display:inline-block;background:#4a3b78;color:#fff;font-size:24px;letter-spacing:6px;padding:12px 24px;border-radius:6px;">{{.Code}}</span>
      </p>
      {{end}}
      <p style="color:#999;font-size:12px;margin-bottom:0;">&copy; {{.Year}} {{.AppName}}</p>
    </div>
  </body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .Code}}
Your code: {{.Code}}
{{end}}
(c) {{.Year}} {{.AppName}}`
