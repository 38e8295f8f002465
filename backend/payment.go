package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type linkResponse struct {
	Link json.RawMessage `json:"link,omitempty"`
}

// payload returns link as text. Strings are unquoted; any other non-null JSON
// value is passed through verbatim.
func (r linkResponse) payload() (string, error) {
	raw := bytes.TrimSpace(r.Link)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] != '"' {
		return string(raw), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("decode link field: %w", err)
	}
	return s, nil
}

// SubscriptionLink returns the payment-subscription 2FA link, or "" while the
// provider is still preparing it.
func (c *Client) SubscriptionLink(ctx context.Context, token string) (string, error) {
	var resp linkResponse
	if err := c.do(ctx, http.MethodPost, "/v1/provider/subscription-2fa", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.payload()
}

// PaymentLink returns the payment page payload (URL or HTML), or "" while the
// provider is still preparing it.
func (c *Client) PaymentLink(ctx context.Context, token string) (string, error) {
	var resp linkResponse
	if err := c.do(ctx, http.MethodPost, "/v1/provider/make-payment", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.payload()
}
