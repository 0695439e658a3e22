// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/freshtrack/freshtrack/internal/config"
)

type SMTPMailer struct {
	cfg  config.SMTPConfig
	auth smtp.Auth
}

func New(cfg config.SMTPConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{cfg: cfg, auth: auth}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := m.buildMessage(to, subject, body)
	address := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if m.cfg.Port == 465 {
		return m.sendImplicitTLS(address, to, msg)
	}
	return m.sendSTARTTLS(address, to, msg)
}

func (m *SMTPMailer) timeout() time.Duration {
	if m.cfg.Timeout == 0 {
		return 10 * time.Second
	}
	return m.cfg.Timeout
}

func (m *SMTPMailer) sendImplicitTLS(address, to string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: m.timeout()}, "tcp", address, tlsConfig)
	if err != nil {
		log.Printf("ERROR [mailer.Send] failed to connect to SMTP server (implicit TLS) %s: %v", address, err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		log.Printf("ERROR [mailer.Send] failed to create SMTP client: %v", err)
		return err
	}
	defer client.Close()

	return m.sendViaClient(client, to, msg)
}

func (m *SMTPMailer) sendSTARTTLS(address, to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, m.timeout())
	if err != nil {
		log.Printf("ERROR [mailer.Send] failed to connect to SMTP server %s: %v", address, err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		log.Printf("ERROR [mailer.Send] failed to create SMTP client: %v", err)
		return err
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.cfg.Host}
	if err = client.StartTLS(tlsConfig); err != nil {
		log.Printf("ERROR [mailer.Send] failed to start TLS: %v", err)
		return err
	}

	return m.sendViaClient(client, to, msg)
}

func (m *SMTPMailer) sendViaClient(client *smtp.Client, to string, msg []byte) error {
	if m.auth != nil {
		if err := client.Auth(m.auth); err != nil {
			log.Printf("ERROR [mailer.Send] SMTP authentication failed: %v", err)
			return err
		}
	}

	if err := client.Mail(m.cfg.Username); err != nil {
		return err
	}

	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err = w.Write(msg); err != nil {
		return err
	}

	if err = w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (m *SMTPMailer) buildMessage(to, subject, body string) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	encodedSenderName := mime.QEncoding.Encode("utf-8", m.cfg.SenderName)
	date := time.Now().Format(time.RFC1123Z)

	return fmt.Appendf(nil,
		"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		date, to, encodedSenderName, m.cfg.Username, encodedSubject, body,
	)
}
