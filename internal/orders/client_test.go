package orders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sockshoplabs/storefront-go/pkg/config"
	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/pagination"
	"github.com/sockshoplabs/storefront-go/pkg/querycache"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
)

const orderJSON = `{
	"id": "2f6a1f8e-7f83-4a1f-9d5d-0f1f2f3f4f5f",
	"status": "paid",
	"total": "24.00",
	"email": "shopper@example.com",
	"createdAt": "2024-05-01T12:00:00Z",
	"items": [
		{"sockVariantId": 1, "name": "Wool Blend", "quantity": 2, "price": "12.00", "size": "M"}
	]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *int64) {
	t.Helper()
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	transport, err := rest.NewClient(config.APIConfig{BaseURL: server.URL}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client, err := NewClient(transport, querycache.New(config.CacheConfig{}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, &hits
}

func TestListCachesPages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[` + orderJSON + `],"total":1,"limit":25,"offset":0}}`))
	}))

	first, err := client.List(ctx, pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Items) != 1 || first.Items[0].Status != "paid" {
		t.Fatalf("unexpected page: %+v", first)
	}
	if _, err := client.List(ctx, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt64(hits); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
}

func TestDeleteInvalidatesListings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.Write([]byte(`{"data":{"message":"order cancelled"}}`))
			return
		}
		w.Write([]byte(`{"data":{"items":[],"total":0,"limit":25,"offset":0}}`))
	}))

	if _, err := client.List(ctx, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	message, err := client.Delete(ctx, "2f6a1f8e-7f83-4a1f-9d5d-0f1f2f3f4f5f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "order cancelled" {
		t.Fatalf("unexpected message %q", message)
	}
	if _, err := client.List(ctx, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt64(hits); got != 3 {
		t.Fatalf("expected refetch after delete, got %d upstream calls", got)
	}
}

func TestGetRejectsMalformedOrder(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"not-a-uuid","status":"paid","email":"shopper@example.com","items":[]}}`))
	}))

	_, err := client.Get(context.Background(), "not-a-uuid")
	if !pkgerrors.Is(err, pkgerrors.CodeResponseValidation) {
		t.Fatalf("expected response validation error, got %v", err)
	}
}
