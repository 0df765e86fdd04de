package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"tallyclank/internal/cache"
	"tallyclank/internal/client/clanker"
	"tallyclank/internal/client/neynar"
	"tallyclank/internal/normalize"
)

const maxPageLimit = 20

// UpstreamError carries the HTTP status a gateway route should surface for
// an upstream failure.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type TokenPage struct {
	Tokens     []normalize.TokenRecord `json:"tokens"`
	Pagination Pagination              `json:"pagination"`
}

// TokenService is the gateway pipeline shared by the token listing routes:
// cache check, upstream fetch, normalization, profile enrichment.
type TokenService struct {
	Clanker     *clanker.Client
	Neynar      *neynar.Client
	Cache       *cache.TTLCache
	Norm        *normalize.Normalizer
	Logger      *zap.Logger
	TokensTTL   time.Duration
	TrendingTTL time.Duration
	ProfileTTL  time.Duration
}

func (s *TokenService) List(ctx context.Context, page, limit int, tab string, forceRefresh bool) (*TokenPage, error) {
	page, limit = clampPage(page, limit)
	if tab == "" {
		tab = "all"
	}
	key := cache.Key("tokens", tab, strconv.Itoa(page), strconv.Itoa(limit))
	if !forceRefresh {
		if cached, ok := s.Cache.Get(key); ok {
			if result, ok := cached.(*TokenPage); ok {
				return result, nil
			}
		}
	}

	raw, status, err := s.Clanker.ListTokens(ctx, page, limit)
	if err != nil {
		return nil, mapTransportError(err)
	}
	if status >= 400 {
		return nil, &UpstreamError{Status: status, Message: fmt.Sprintf("Clanker API unavailable (%d)", status)}
	}

	items := normalize.ExtractItems(raw)
	total := normalize.ExtractTotal(raw, len(items))
	tokens := s.normalizeAndEnrich(ctx, items)

	result := &TokenPage{
		Tokens: tokens,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	}
	s.Cache.Set(key, result, s.TokensTTL)
	return result, nil
}

func (s *TokenService) Search(ctx context.Context, query string) ([]normalize.TokenRecord, error) {
	raw, status, err := s.Clanker.SearchTokens(ctx, query)
	if err != nil {
		return nil, mapTransportError(err)
	}
	if status >= 400 {
		return nil, &UpstreamError{Status: status, Message: fmt.Sprintf("search API unavailable (%d)", status)}
	}
	items := normalize.ExtractItems(raw)
	return s.normalizeAndEnrich(ctx, items), nil
}

func (s *TokenService) Trending(ctx context.Context, page, limit int, forceRefresh bool) (*TokenPage, error) {
	page, limit = clampPage(page, limit)
	key := cache.Key("trending", strconv.Itoa(page), strconv.Itoa(limit))
	if !forceRefresh {
		if cached, ok := s.Cache.Get(key); ok {
			if result, ok := cached.(*TokenPage); ok {
				return result, nil
			}
		}
	}

	raw, status, err := s.Clanker.TrendingTokens(ctx, page, limit)
	if err != nil {
		return nil, mapTransportError(err)
	}
	if status >= 400 {
		return nil, &UpstreamError{Status: status, Message: fmt.Sprintf("trending API unavailable (%d)", status)}
	}

	items := normalize.ExtractItems(raw)
	total := normalize.ExtractTotal(raw, len(items))
	tokens := s.normalizeAndEnrich(ctx, items)

	result := &TokenPage{
		Tokens: tokens,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	}
	s.Cache.Set(key, result, s.TrendingTTL)
	return result, nil
}

// TrendingRaw proxies the h24-ordered trending feed without reshaping.
func (s *TokenService) TrendingRaw(ctx context.Context, page int) (any, error) {
	raw, status, err := s.Clanker.TrendingRaw(ctx, page)
	if err != nil {
		return nil, mapTransportError(err)
	}
	if status >= 400 {
		return nil, &UpstreamError{Status: status, Message: fmt.Sprintf("trending API unavailable (%d)", status)}
	}
	return raw, nil
}

// normalizeAndEnrich projects raw upstream objects into TokenRecords and
// fans out the per-token Farcaster profile lookups, bounded by the page size
// (at most maxPageLimit goroutines).
func (s *TokenService) normalizeAndEnrich(ctx context.Context, items []map[string]any) []normalize.TokenRecord {
	tokens := make([]normalize.TokenRecord, len(items))
	p := pool.New().WithMaxGoroutines(maxPageLimit)
	for i, item := range items {
		i, item := i, item
		p.Go(func() {
			rec := s.Norm.Token(item)
			if rec.RequestorFID > 0 {
				if profile := s.profileForFID(ctx, rec.RequestorFID); profile != nil {
					rec.Profile = *profile
				}
			}
			tokens[i] = rec
		})
	}
	p.Wait()
	return tokens
}

func (s *TokenService) profileForFID(ctx context.Context, fid int64) *normalize.Profile {
	if s.Neynar == nil {
		return nil
	}
	key := cache.Key("profile", strconv.FormatInt(fid, 10))
	if cached, ok := s.Cache.Get(key); ok {
		if profile, ok := cached.(*normalize.Profile); ok {
			return profile
		}
	}
	profile, err := s.Neynar.UserByFID(ctx, fid)
	if err != nil {
		// Enrichment is best-effort; a missing profile never fails the page.
		s.Logger.Debug("profile lookup failed", zap.Int64("fid", fid), zap.Error(err))
		return nil
	}
	if profile != nil {
		ttl := s.ProfileTTL
		if ttl <= 0 {
			ttl = time.Hour
		}
		s.Cache.Set(key, profile, ttl)
	}
	return profile
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Status: 504, Message: "request timeout - Clanker API is taking too long to respond"}
	}
	return &UpstreamError{Status: 503, Message: "network error - unable to connect to Clanker API"}
}
