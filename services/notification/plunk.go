package notification_service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/utils"
)

// Plunk sends transactional email receipts.
type Plunk struct {
	HttpClient *http.Client
	Config     *utils.Config
}

func NewPlunk(config *utils.Config) *Plunk {
	return &Plunk{
		HttpClient: &http.Client{},
		Config:     config,
	}
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Plunk) makeRequest(method, endpoint string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, s.Config.PlunkBaseUrl+endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.Config.PlunkApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.New(string(respBody))
	}

	return respBody, nil
}

// SendEmail delivers a plain transactional email.
func (s *Plunk) SendEmail(to, subject, body string) error {
	_, err := s.makeRequest(http.MethodPost, "/v1/send", EmailRequest{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("unable to send email: %w", err)
	}
	return nil
}
