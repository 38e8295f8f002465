package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"wealth-agent/domain"
)

// truthy decodes any JSON value with JavaScript truthiness, matching how the
// provider's flags have always been read: 1, "yes" and true are set; null,
// 0, "" and false are not.
type truthy bool

func (t *truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte(`""`)):
		*t = false
	case bytes.Equal(data, []byte("true")):
		*t = true
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = n != 0
	default:
		// non-empty strings, objects and arrays
		*t = true
	}
	return nil
}

type profileWire struct {
	CKYC                 truthy `json:"CKYC"`
	BasicDetails         truthy `json:"BasicDetails"`
	Address              truthy `json:"Address"`
	AccountDetails       truthy `json:"AccountDetails"`
	NomineeDetails       truthy `json:"NomineeDetails"`
	NomineeAuthenticated truthy `json:"NomineeAuthenticated"`
	IsMinor              truthy `json:"isMinor"`
}

// FetchProfile loads the completion flags of the token's user.
func (c *Client) FetchProfile(ctx context.Context, token string) (domain.ProfileStatus, error) {
	var wire profileWire
	if err := c.do(ctx, http.MethodGet, "/v1/profile", token, nil, &wire); err != nil {
		return domain.ProfileStatus{}, err
	}
	return domain.ProfileStatus{
		CKYC:                 bool(wire.CKYC),
		BasicDetails:         bool(wire.BasicDetails),
		Address:              bool(wire.Address),
		AccountDetails:       bool(wire.AccountDetails),
		NomineeDetails:       bool(wire.NomineeDetails),
		NomineeAuthenticated: bool(wire.NomineeAuthenticated),
		IsMinor:              bool(wire.IsMinor),
	}, nil
}

type Nominee2FAResponse struct {
	Message   string `json:"message"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

// Nominee2FA asks the provider to prepare (or confirm) the nominee 2FA step.
func (c *Client) Nominee2FA(ctx context.Context, token string) (Nominee2FAResponse, error) {
	var resp Nominee2FAResponse
	err := c.do(ctx, http.MethodGet, "/v1/provider/nominee-2fa", token, nil, &resp)
	return resp, err
}
