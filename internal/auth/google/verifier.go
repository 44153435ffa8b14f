// Package google verifies Google ID tokens for federated sign-in.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travelnest_backend/platform/logger"

	"github.com/sony/gobreaker"
)

// DefaultTokenInfoURL is Google's token introspection endpoint.
const DefaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// ErrInvalidToken is returned when Google rejects the token or its claims
// do not fit this application.
var ErrInvalidToken = errors.New("invalid google id token")

// Identity is the verified profile asserted by Google.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

// Verifier validates ID tokens through the tokeninfo endpoint behind a
// circuit breaker, so an outage at Google fails fast instead of piling up.
type Verifier struct {
	clientID string
	endpoint string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker
}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithEndpoint overrides the tokeninfo URL.
func WithEndpoint(endpoint string) Option {
	return func(v *Verifier) { v.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) { v.http = c }
}

// NewVerifier creates a verifier for tokens issued to clientID.
func NewVerifier(clientID string, log *logger.Logger, opts ...Option) *Verifier {
	v := &Verifier{
		clientID: clientID,
		endpoint: DefaultTokenInfoURL,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}

	v.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "google-tokeninfo",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		// Rejected tokens are the caller's fault, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidToken)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			}
		},
	})
	return v
}

type tokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Exp           string `json:"exp"`
}

// Verify checks the token with Google and returns the asserted identity.
func (v *Verifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	if strings.TrimSpace(idToken) == "" {
		return Identity{}, ErrInvalidToken
	}

	result, err := v.cb.Execute(func() (interface{}, error) {
		return v.fetch(ctx, idToken)
	})
	if err != nil {
		return Identity{}, err
	}

	info := result.(tokenInfo)
	if info.Aud != v.clientID {
		return Identity{}, ErrInvalidToken
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return Identity{}, ErrInvalidToken
	}

	name := info.Name
	if name == "" {
		name = strings.SplitN(info.Email, "@", 2)[0]
	}
	return Identity{Email: info.Email, Name: name, Picture: info.Picture}, nil
}

func (v *Verifier) fetch(ctx context.Context, idToken string) (tokenInfo, error) {
	reqURL := v.endpoint + "?" + url.Values{"id_token": {idToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return tokenInfo{}, err
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return tokenInfo{}, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return tokenInfo{}, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return tokenInfo{}, fmt.Errorf("tokeninfo returned %d", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return tokenInfo{}, fmt.Errorf("decode tokeninfo: %w", err)
	}
	return info, nil
}
