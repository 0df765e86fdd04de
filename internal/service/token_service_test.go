package service

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"tallyclank/internal/cache"
	"tallyclank/internal/normalize"
)

func newTokenService(t *testing.T, handler http.HandlerFunc) (*TokenService, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	client, _ := clankerTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	})
	svc := &TokenService{
		Clanker:     client,
		Cache:       cache.New(time.Minute, time.Minute),
		Norm:        &normalize.Normalizer{},
		Logger:      zap.NewNop(),
		TokensTTL:   time.Minute,
		TrendingTTL: time.Minute,
	}
	return svc, &hits
}

func TestListCachesWithinTTL(t *testing.T) {
	svc, hits := newTokenService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"tok-1","name":"Alpha","symbol":"ALP"}],"total":120}`))
	})
	ctx := context.Background()

	first, err := svc.List(ctx, 1, 12, "all", false)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if len(first.Tokens) != 1 {
		t.Fatalf("got %d tokens", len(first.Tokens))
	}
	if first.Pagination.Total != 120 || first.Pagination.TotalPages != 10 {
		t.Fatalf("pagination: %+v", first.Pagination)
	}

	if _, err := svc.List(ctx, 1, 12, "all", false); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one upstream hit within TTL, got %d", hits.Load())
	}

	if _, err := svc.List(ctx, 1, 12, "all", true); err != nil {
		t.Fatalf("forced list: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("forceRefresh should bypass the cache, got %d hits", hits.Load())
	}

	// A different tab or page is a different cache entry.
	if _, err := svc.List(ctx, 2, 12, "all", false); err != nil {
		t.Fatalf("page 2 list: %v", err)
	}
	if hits.Load() != 3 {
		t.Fatalf("page 2 should miss the cache, got %d hits", hits.Load())
	}
}

func TestListClampsLimit(t *testing.T) {
	svc, _ := newTokenService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit sent upstream = %q, want clamped 20", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"total":0}`))
	})

	result, err := svc.List(context.Background(), 0, 50, "", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Pagination.Page != 1 || result.Pagination.Limit != 20 {
		t.Fatalf("clamping wrong: %+v", result.Pagination)
	}
}

func TestListUpstreamErrorMirrorsStatus(t *testing.T) {
	svc, _ := newTokenService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	})

	_, err := svc.List(context.Background(), 1, 12, "all", false)
	ue, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("expected UpstreamError, got %T %v", err, err)
	}
	if ue.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", ue.Status)
	}
}

func TestSearchNormalizesBareArray(t *testing.T) {
	svc, _ := newTokenService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"tok-1","tokenName":"Alpha","ticker":"ALP","contract_address":"0xabc"}]`))
	})

	tokens, err := svc.Search(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	if tokens[0].Name != "Alpha" || tokens[0].Symbol != "ALP" {
		t.Fatalf("fallback keys not applied: %+v", tokens[0])
	}
}

func TestTrendingUsesOwnCacheKey(t *testing.T) {
	svc, hits := newTokenService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"tok-1"}]}`))
	})
	ctx := context.Background()

	if _, err := svc.List(ctx, 1, 12, "all", false); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.Trending(ctx, 1, 12, false); err != nil {
		t.Fatalf("trending: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("listing and trending must not share cache entries, got %d hits", hits.Load())
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{50000, 20, 2500},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Fatalf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
