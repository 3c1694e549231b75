package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Identity is what the external provider returns for a valid assertion.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// IdentityProvider exchanges a short-lived external assertion for the
// identity it vouches for.
type IdentityProvider interface {
	Exchange(ctx context.Context, assertion string) (Identity, error)
}

// HTTPProvider talks to the identity provider over one bounded GET.
type HTTPProvider struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPProvider(endpoint string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Exchange presents the assertion and returns the provider's identity claims.
// Every failure mode — transport error, timeout, non-200, unusable body —
// collapses to ErrExternalAuthFailed so callers fail closed.
func (p *HTTPProvider) Exchange(ctx context.Context, assertion string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrExternalAuthFailed, err)
	}
	req.Header.Set("X-Session-ID", assertion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrExternalAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%w: provider returned status %d", ErrExternalAuthFailed, resp.StatusCode)
	}

	var ident Identity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return Identity{}, fmt.Errorf("%w: decoding provider response: %v", ErrExternalAuthFailed, err)
	}
	if ident.Email == "" {
		return Identity{}, fmt.Errorf("%w: provider response missing email", ErrExternalAuthFailed)
	}

	return ident, nil
}
