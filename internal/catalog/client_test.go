package catalog

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

const listBody = `{"data":{"items":[{"id":1,"name":"Wool Blend","price":10.99,"imageUrl":"https://cdn.sockshop.test/wool.jpg","variants":[{"id":11,"size":"M","stock":5}]}],"total":1,"limit":25,"offset":0}}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
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

func TestListIsCached(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listBody))
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		page, err := client.List(ctx, pagination.Params{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Name != "Wool Blend" {
			t.Fatalf("unexpected page: %+v", page)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", hits.Load())
	}
}

func TestDistinctPagesFetchSeparately(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listBody))
	}))

	ctx := context.Background()
	if _, err := client.List(ctx, pagination.Params{Limit: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.List(ctx, pagination.Params{Limit: 10, Offset: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected two upstream calls, got %d", hits.Load())
	}
}

func TestMutationsInvalidateListings(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"data":{"id":2,"name":"Cotton Crew","price":7.5,"imageUrl":"https://cdn.sockshop.test/cotton.jpg"}}`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{"data":{"message":"sock deleted"}}`))
		default:
			w.Write([]byte(listBody))
		}
	}))

	ctx := context.Background()
	if _, err := client.List(ctx, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.List(ctx, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected cached listing, got %d calls", hits.Load())
	}

	created, err := client.Create(ctx, CreateSockInput{
		Name:     "Cotton Crew",
		ImageURL: "https://cdn.sockshop.test/cotton.jpg",
		Variants: []Variant{{ID: 21, Size: "S", Stock: 3}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 2 {
		t.Fatalf("unexpected created sock: %+v", created)
	}

	if _, err := client.List(ctx, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected refetch after create, got %d calls", hits.Load())
	}

	msg, err := client.Delete(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "sock deleted" {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, err := client.List(ctx, pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 5 {
		t.Fatalf("expected refetch after delete, got %d calls", hits.Load())
	}
}

func TestCreateValidatesInputBeforeRequest(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listBody))
	}))

	_, err := client.Create(context.Background(), CreateSockInput{Name: "", ImageURL: "not-a-url"})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("invalid input must not reach the network")
	}
}

func TestMalformedListingFailsSchemaGate(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// items contain a sock with no id/name
		w.Write([]byte(`{"data":{"items":[{"price":1}],"total":1,"limit":25,"offset":0}}`))
	}))

	_, err := client.List(context.Background(), pagination.Params{})
	if !pkgerrors.Is(err, pkgerrors.CodeResponseValidation) {
		t.Fatalf("expected response validation error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/socks/7" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"no such sock"}}`))
			return
		}
		w.Write([]byte(`{"data":{"id":7,"name":"Hiker","price":12,"imageUrl":"https://cdn.sockshop.test/hiker.jpg"}}`))
	}))

	ctx := context.Background()
	sock, err := client.Get(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sock.Name != "Hiker" {
		t.Fatalf("unexpected sock: %+v", sock)
	}

	if _, err := client.Get(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected cached get, got %d calls", hits.Load())
	}

	_, err = client.Get(ctx, 404)
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
