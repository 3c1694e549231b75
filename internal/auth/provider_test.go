package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProvider_Exchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") != "assertion-123" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"driver@example.com","name":"Test Driver","picture":"https://img.example.com/p.png"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, 2*time.Second)
	ident, err := p.Exchange(context.Background(), "assertion-123")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if ident.Email != "driver@example.com" {
		t.Errorf("email = %q", ident.Email)
	}
	if ident.Name != "Test Driver" {
		t.Errorf("name = %q", ident.Name)
	}
}

func TestHTTPProvider_Exchange_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, 2*time.Second)
	_, err := p.Exchange(context.Background(), "bad-assertion")
	if !errors.Is(err, ErrExternalAuthFailed) {
		t.Fatalf("expected ErrExternalAuthFailed, got %v", err)
	}
}

func TestHTTPProvider_Exchange_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, 20*time.Millisecond)
	_, err := p.Exchange(context.Background(), "slow-assertion")
	if !errors.Is(err, ErrExternalAuthFailed) {
		t.Fatalf("timeout must fail closed with ErrExternalAuthFailed, got %v", err)
	}
}

func TestHTTPProvider_Exchange_MissingEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"No Email"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, 2*time.Second)
	_, err := p.Exchange(context.Background(), "assertion")
	if !errors.Is(err, ErrExternalAuthFailed) {
		t.Fatalf("expected ErrExternalAuthFailed for missing email, got %v", err)
	}
}
