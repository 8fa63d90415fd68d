package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPApplier posts intents to the backend's sync endpoint. A timeout or
// non-2xx response is a failure and the intent stays queued; success is
// never assumed without a confirmed response.
type HTTPApplier struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPApplier(baseURL, token string) *HTTPApplier {
	return &HTTPApplier{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type intentRequest struct {
	Collection string          `json:"collection"`
	ClientKey  string          `json:"client_key"`
	CapturedAt time.Time       `json:"captured_at"`
	Payload    json.RawMessage `json:"payload"`
}

func (a *HTTPApplier) Apply(ctx context.Context, intent Intent) error {
	body, err := json.Marshal(intentRequest{
		Collection: intent.Collection,
		ClientKey:  intent.ClientKey,
		CapturedAt: intent.CreatedAt,
		Payload:    intent.Payload,
	})
	if err != nil {
		return fmt.Errorf("encoding intent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/sync/intent", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.Token)

	resp, err := a.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sync endpoint returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
