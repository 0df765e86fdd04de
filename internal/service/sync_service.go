package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tallyclank/internal/client/clanker"
	"tallyclank/internal/models"
	"tallyclank/internal/repository"
)

const syncScope = "clanker_tokens"

// SyncService mirrors the Tally Clank subset of the upstream token listing
// into the clanker_tokens table. One run fetches a single page, filters by
// the target requestor FID and upserts each surviving row. A failed row is
// recorded and skipped, never aborting the batch; a crash mid-batch leaves
// committed rows in place for the next run to reconcile.
type SyncService struct {
	Repo      repository.TokenRepository
	Clanker   *clanker.Client
	Logger    *zap.Logger
	TargetFID int64
	PageLimit int
}

type ProcessedToken struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Action string `json:"action"`
}

type SyncSummary struct {
	Message      string           `json:"message"`
	RequestorFID int64            `json:"requestor_fid"`
	TotalChecked int              `json:"total_tokens_checked"`
	TokensFound  int              `json:"tokens_found"`
	Inserted     int              `json:"tokens_inserted"`
	Updated      int              `json:"tokens_updated"`
	Processed    []ProcessedToken `json:"processed_tokens,omitempty"`
	Errors       []string         `json:"errors,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

type SyncStatus struct {
	Message      string                `json:"message"`
	RequestorFID int64                 `json:"requestor_fid"`
	TotalStored  int64                 `json:"total_tokens_stored"`
	LatestTokens []models.ClankerToken `json:"latest_tokens"`
	State        *models.SyncState     `json:"state,omitempty"`
	Timestamp    time.Time             `json:"timestamp"`
}

func (s *SyncService) Run(ctx context.Context) (*SyncSummary, error) {
	now := time.Now().UTC()

	if err := s.Repo.CheckTokensTable(ctx); err != nil {
		s.writeState(ctx, now, nil, err)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	limit := s.PageLimit
	if limit <= 0 {
		limit = 100
	}
	page, err := s.Clanker.TokensPage(ctx, limit)
	if err != nil {
		s.writeState(ctx, now, nil, err)
		return nil, fmt.Errorf("clanker fetch failed: %w", err)
	}

	var matched []clanker.APIToken
	for _, token := range page {
		if token.RequestorFID == s.TargetFID {
			matched = append(matched, token)
		}
	}

	summary := &SyncSummary{
		RequestorFID: s.TargetFID,
		TotalChecked: len(page),
		TokensFound:  len(matched),
		Timestamp:    now,
	}

	if len(matched) == 0 {
		summary.Message = "No tokens found with target requestor_fid"
		s.writeState(ctx, now, summary, nil)
		return summary, nil
	}

	ids := make([]string, 0, len(matched))
	for _, token := range matched {
		if id := tokenID(token.ID); id != "" {
			ids = append(ids, id)
		}
	}
	existing, err := s.Repo.ExistingTokenIDs(ctx, ids)
	if err != nil {
		s.writeState(ctx, now, summary, err)
		return nil, fmt.Errorf("existing id lookup failed: %w", err)
	}

	for _, token := range matched {
		id := tokenID(token.ID)
		if missing := missingRequiredFields(id, token); len(missing) > 0 {
			msg := fmt.Sprintf("token %s missing required fields: %s", token.Symbol, strings.Join(missing, ", "))
			s.Logger.Warn("skipping invalid token", zap.String("symbol", token.Symbol), zap.Strings("missing", missing))
			summary.Errors = append(summary.Errors, msg)
			continue
		}

		row := toModel(id, token)
		if err := s.Repo.UpsertToken(ctx, row); err != nil {
			msg := fmt.Sprintf("error processing token %s (ID: %s): %v", token.Symbol, id, err)
			s.Logger.Warn("token upsert failed", zap.String("id", id), zap.Error(err))
			summary.Errors = append(summary.Errors, msg)
			continue
		}

		action := "inserted"
		if _, ok := existing[id]; ok {
			action = "updated"
			summary.Updated++
		} else {
			summary.Inserted++
		}
		summary.Processed = append(summary.Processed, ProcessedToken{
			ID:     id,
			Name:   token.Name,
			Symbol: token.Symbol,
			Action: action,
		})
	}

	summary.Message = "Sync completed successfully"
	s.writeState(ctx, now, summary, nil)
	s.Logger.Info("token sync complete",
		zap.Int("checked", summary.TotalChecked),
		zap.Int("found", summary.TokensFound),
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("errors", len(summary.Errors)),
	)
	return summary, nil
}

// Status is the GET read-back: the most recent stored rows plus the total
// count and last recorded sync state.
func (s *SyncService) Status(ctx context.Context) (*SyncStatus, error) {
	tokens, err := s.Repo.ListTokensByFID(ctx, s.TargetFID, 10, 0)
	if err != nil {
		return nil, err
	}
	count, err := s.Repo.CountTokensByFID(ctx, s.TargetFID)
	if err != nil {
		return nil, err
	}
	state, err := s.Repo.GetSyncState(ctx, syncScope)
	if err != nil {
		return nil, err
	}
	return &SyncStatus{
		Message:      "Sync status retrieved successfully",
		RequestorFID: s.TargetFID,
		TotalStored:  count,
		LatestTokens: tokens,
		State:        state,
		Timestamp:    time.Now().UTC(),
	}, nil
}

func (s *SyncService) writeState(ctx context.Context, now time.Time, summary *SyncSummary, runErr error) {
	state := &models.SyncState{
		Scope:         syncScope,
		LastAttemptAt: &now,
	}
	if runErr == nil {
		state.LastSuccessAt = &now
	} else {
		msg := runErr.Error()
		state.LastError = &msg
	}
	if summary != nil {
		stats, err := json.Marshal(map[string]int{
			"checked":  summary.TotalChecked,
			"found":    summary.TokensFound,
			"inserted": summary.Inserted,
			"updated":  summary.Updated,
			"errors":   len(summary.Errors),
		})
		if err == nil {
			state.StatsJSON = datatypes.JSON(stats)
		}
	}
	if err := s.Repo.SaveSyncState(ctx, state); err != nil {
		s.Logger.Warn("save sync state failed", zap.Error(err))
	}
}

func missingRequiredFields(id string, token clanker.APIToken) []string {
	var missing []string
	if id == "" {
		missing = append(missing, "id")
	}
	if token.Name == "" {
		missing = append(missing, "name")
	}
	if token.Symbol == "" {
		missing = append(missing, "symbol")
	}
	if token.ContractAddress == "" {
		missing = append(missing, "contract_address")
	}
	if token.TxHash == "" {
		missing = append(missing, "tx_hash")
	}
	return missing
}

func toModel(id string, token clanker.APIToken) *models.ClankerToken {
	row := &models.ClankerToken{
		ID:              id,
		CreatedAt:       parseUpstreamTime(token.CreatedAt),
		TxHash:          token.TxHash,
		ContractAddress: token.ContractAddress,
		Name:            token.Name,
		Symbol:          token.Symbol,
		Supply:          token.Supply,
		ImgURL:          token.ImgURL,
		PoolAddress:     token.PoolAddress,
		CastHash:        token.CastHash,
		Type:            token.Type,
		Pair:            token.Pair,
		ChainID:         token.ChainID,
		Metadata:        toJSON(token.Metadata),
		DeployConfig:    toJSON(token.DeployConfig),
		SocialContext:   toJSON(token.SocialContext),
		RequestorFID:    token.RequestorFID,
		DeployedAt:      parseUpstreamTime(token.DeployedAt),
		MsgSender:       token.MsgSender,
		FactoryAddress:  token.FactoryAddress,
		LockerAddress:   token.LockerAddress,
		PositionID:      token.PositionID,
		Warnings:        toJSON(token.Warnings),
		PoolConfig:      toJSON(token.PoolConfig),
	}
	if token.StartingMarketCap > 0 {
		mc := decimal.NewFromFloat(token.StartingMarketCap)
		row.StartingMarketCap = &mc
	}
	return row
}

func tokenID(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}

func parseUpstreamTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
