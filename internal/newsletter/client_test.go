package newsletter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sockshoplabs/storefront-go/pkg/config"
	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport, err := rest.NewClient(config.APIConfig{BaseURL: server.URL}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client, err := NewClient(transport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body.Email != "shopper@example.com" {
			t.Errorf("unexpected email %q", body.Email)
		}
		w.Write([]byte(`{"data":{"message":"subscribed"}}`))
	}))

	message, err := client.Subscribe(context.Background(), "shopper@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "subscribed" {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid email must not reach the network")
	}))

	for _, email := range []string{"", "not-an-email"} {
		if _, err := client.Subscribe(context.Background(), email); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %q, got %v", email, err)
		}
	}
}
