package askclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the loopback address the backend listens on by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

var (
	ErrStatus   = errors.New("askclient: unexpected status")
	ErrNoAnswer = errors.New("askclient: response has no answer")
)

// AskRequest is the POST /ask body.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the POST /ask reply. Answer is a pointer so a missing field can be told
// apart from an empty answer.
type AskResponse struct {
	Question string  `json:"question,omitempty"`
	Answer   *string `json:"answer"`
}

// Client talks to a question-answering backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for baseURL. A zero timeout means requests only end with their context.
func New(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Ask posts the question and returns the backend's answer.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(AskRequest{Question: question})
	if err != nil {
		return "", errors.Wrap(err, "askclient: encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "askclient: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "askclient: post /ask")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "askclient: read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrapf(ErrStatus, "%d: %s", resp.StatusCode, snippet(raw))
	}

	var out AskResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", errors.Wrap(err, "askclient: decode response")
	}
	if out.Answer == nil {
		return "", ErrNoAnswer
	}
	return *out.Answer, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
