package sender

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/config"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/producer"

	gopkgmail "gopkg.in/gomail.v2"
)

// Dialer — то, что умеет отправить готовое письмо; *gomail.Dialer в проде.
type Dialer interface {
	DialAndSend(m ...*gopkgmail.Message) error
}

type EmailSender struct {
	cfg    *config.Notifier
	dialer Dialer

	mu   sync.Mutex
	html map[string]*htmltemplate.Template
	text map[string]*texttemplate.Template
}

func NewEmailSender(cfg *config.Notifier) *EmailSender {
	d := gopkgmail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPSSL
	return NewEmailSenderWithDialer(cfg, d)
}

func NewEmailSenderWithDialer(cfg *config.Notifier, d Dialer) *EmailSender {
	return &EmailSender{
		cfg:    cfg,
		dialer: d,
		html:   make(map[string]*htmltemplate.Template),
		text:   make(map[string]*texttemplate.Template),
	}
}

func (s *EmailSender) SendEmail(msg producer.EmailMessage) error {
	m, err := s.Build(msg)
	if err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}

// Build собирает письмо: text/plain + text/html из шаблонов TMPL_DIR/<template>.{txt,html}.
func (s *EmailSender) Build(msg producer.EmailMessage) (*gopkgmail.Message, error) {
	htmlBody, err := s.renderHTML(msg.Template, msg.Data)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	plainBody, err := s.renderPlain(msg.Template, msg.Data)
	if err != nil {
		return nil, fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if strings.Contains(htmlBody, "cid:logo") {
		iconPath := filepath.Join(s.cfg.TMPLDir, "icon.png")
		if _, errStat := os.Stat(iconPath); errStat == nil {
			m.Embed(iconPath, gopkgmail.SetHeader(map[string][]string{"Content-ID": {"<logo>"}}))
		}
	}
	return m, nil
}

func (s *EmailSender) renderHTML(name string, data map[string]any) (string, error) {
	s.mu.Lock()
	tmpl, ok := s.html[name]
	s.mu.Unlock()
	if !ok {
		content, err := os.ReadFile(s.path(name, ".html"))
		if err != nil {
			return "", err
		}
		tmpl, err = htmltemplate.New(name).Option("missingkey=zero").Parse(string(content))
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.html[name] = tmpl
		s.mu.Unlock()
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *EmailSender) renderPlain(name string, data map[string]any) (string, error) {
	s.mu.Lock()
	tmpl, ok := s.text[name]
	s.mu.Unlock()
	if !ok {
		content, err := os.ReadFile(s.path(name, ".txt"))
		if err != nil {
			return "", err
		}
		tmpl, err = texttemplate.New(name).Option("missingkey=zero").Parse(string(content))
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.text[name] = tmpl
		s.mu.Unlock()
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// path не даёт выйти за пределы TMPL_DIR через имя шаблона.
func (s *EmailSender) path(name, ext string) string {
	return filepath.Join(s.cfg.TMPLDir, filepath.Base(name)+ext)
}
