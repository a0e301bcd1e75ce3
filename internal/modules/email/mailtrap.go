package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Service interface {
	SendEmail(to string, toName string, subject string, htmlBody string, textBody string) error
}

type MailtrapConfig struct {
	APIURL   string
	APIToken string
	From     string
	FromName string
}

type MailtrapProvider struct {
	cfg MailtrapConfig
	hc  *http.Client
}

type mailtrapPayload struct {
	From     personInfo   `json:"from"`
	To       []personInfo `json:"to"`
	Subject  string       `json:"subject"`
	Text     string       `json:"text,omitempty"`
	HTML     string       `json:"html,omitempty"`
	Category string       `json:"category,omitempty"`
}

type personInfo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func NewMailtrapProvider(cfg MailtrapConfig) *MailtrapProvider {
	return &MailtrapProvider{cfg: cfg, hc: &http.Client{Timeout: 15 * time.Second}}
}

func (m *MailtrapProvider) SendEmail(to string, toName string, subject string, htmlBody string, textBody string) error {
	if m.cfg.APIURL == "" || m.cfg.APIToken == "" {
		return fmt.Errorf("mail credentials not configured")
	}

	payload := mailtrapPayload{
		From:     personInfo{Email: m.cfg.From, Name: m.cfg.FromName},
		To:       []personInfo{{Email: to, Name: toName}},
		Subject:  subject,
		HTML:     htmlBody,
		Text:     textBody,
		Category: "Transactional",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", m.cfg.APIURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", m.cfg.APIToken))
	req.Header.Add("Content-Type", "application/json")

	res, err := m.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("mail API error: %d", res.StatusCode)
	}
	return nil
}
