package credential

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"momoapi/internal/domain/wire"
)

// APIToken is the bearer token issued by a product's token endpoint.
// It carries no absolute expiry; callers that keep it around must track
// issuance time themselves.
type APIToken struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
}

// ParseAPIToken parses a token-issuance response body
func ParseAPIToken(body []byte) (APIToken, error) {
	var raw struct {
		AccessToken string  `json:"access_token"`
		TokenType   string  `json:"token_type"`
		ExpiresIn   seconds `json:"expires_in"`
	}
	if err := wire.DecodeObject(body, &raw); err != nil {
		return APIToken{}, fmt.Errorf("failed to parse token response: %w", err)
	}

	return APIToken{
		AccessToken: raw.AccessToken,
		TokenType:   raw.TokenType,
		ExpiresIn:   int(raw.ExpiresIn),
	}, nil
}

// Bearer returns the Authorization header value for product calls
func (t APIToken) Bearer() string {
	return "Bearer " + t.AccessToken
}

// ExpiresAt returns the expiry relative to the moment the token was issued
func (t APIToken) ExpiresAt(issuedAt time.Time) time.Time {
	return issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// seconds accepts expires_in as a JSON number or a numeric string.
type seconds int

func (s *seconds) UnmarshalJSON(b []byte) error {
	v := strings.Trim(string(b), `"`)
	if v == "" || v == "null" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid expires_in %s", string(b))
	}
	*s = seconds(f)
	return nil
}
