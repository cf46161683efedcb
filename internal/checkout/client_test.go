package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sockshoplabs/storefront-go/internal/cart"
	"github.com/sockshoplabs/storefront-go/pkg/config"
	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
	"github.com/sockshoplabs/storefront-go/pkg/querycache"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
	"github.com/sockshoplabs/storefront-go/pkg/storage"
	"github.com/sockshoplabs/storefront-go/pkg/types"
)

type memStore struct {
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	if val, ok := s.values[key]; ok {
		return val, nil
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestCart(t *testing.T, store storage.Store) *cart.Manager {
	t.Helper()
	manager, err := cart.NewManager(store, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := manager.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	return manager
}

func lineItem(id, qty int) cart.LineItem {
	return cart.LineItem{
		SockVariantID: id,
		Name:          "Wool Blend",
		Quantity:      qty,
		Price:         types.MoneyFromFloat(10),
		Size:          types.SockSizeM,
		ImageURL:      "https://cdn.sockshop.test/wool.jpg",
	}
}

func newTestClient(t *testing.T, handler http.Handler, manager *cart.Manager) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport, err := rest.NewClient(config.APIConfig{BaseURL: server.URL}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client, err := NewClient(transport, manager, querycache.New(config.CacheConfig{}, nil),
		config.CheckoutConfig{ReturnURL: "https://shop.sockshop.test/checkout/done"}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestStartRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	manager := newTestCart(t, newMemStore())
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty cart must not reach the network")
	}), manager)

	_, err := client.Start(context.Background())
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStartSubmitsCartSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := newTestCart(t, newMemStore())
	if _, err := manager.AddItem(ctx, lineItem(1, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Idempotency-Key") == "" {
			t.Errorf("expected idempotency key header")
		}
		var body struct {
			Items     []cart.LineItem `json:"items"`
			ReturnURL string          `json:"returnUrl"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if len(body.Items) != 1 || body.Items[0].Quantity != 2 {
			t.Errorf("unexpected items: %+v", body.Items)
		}
		if body.ReturnURL != "https://shop.sockshop.test/checkout/done" {
			t.Errorf("unexpected return url %q", body.ReturnURL)
		}
		w.Write([]byte(`{"data":{"checkoutId":"chk_123","redirectUrl":"https://pay.provider.test/chk_123"}}`))
	}), manager)

	res, err := client.Start(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RedirectURL != "https://pay.provider.test/chk_123" {
		t.Fatalf("unexpected redirect: %+v", res)
	}
	if len(manager.Items()) != 1 {
		t.Fatalf("cart must stay intact until confirmation")
	}
}

func TestConfirmEmptiesCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	manager := newTestCart(t, store)
	if _, err := manager.AddItem(ctx, lineItem(1, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout/chk_123/confirm" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"unknown checkout"}}`))
			return
		}
		w.Write([]byte(`{"data":{"orderId":"ord_9","message":"order placed"}}`))
	}), manager)

	res, err := client.Confirm(ctx, "chk_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OrderID != "ord_9" {
		t.Fatalf("unexpected confirmation: %+v", res)
	}
	if len(manager.Items()) != 0 {
		t.Fatalf("cart must be empty after confirmation")
	}
	if _, ok := store.values[storage.CartKey]; ok {
		t.Fatalf("cart storage must be cleared after confirmation")
	}
}

func TestConfirmFailureKeepsCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := newTestCart(t, newMemStore())
	if _, err := manager.AddItem(ctx, lineItem(1, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"unknown checkout"}}`))
	}), manager)

	_, err := client.Confirm(ctx, "chk_nope")
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(manager.Items()) != 1 {
		t.Fatalf("failed confirmation must not touch the cart")
	}
}
