package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tallyclank/internal/models"
	"tallyclank/internal/repository"
)

const clankerStandardSupply = 100_000_000_000

// StoredToken is the display shape for a persisted row. Price, volume and
// 24h change are not stored so they always read zero; live values come from
// the analytics route.
type StoredToken struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Symbol            string          `json:"symbol"`
	Price             float64         `json:"price"`
	MarketCap         float64         `json:"marketCap"`
	Volume            float64         `json:"volume"`
	Change24h         float64         `json:"change24h"`
	ImageURL          string          `json:"imageUrl"`
	ImgURL            string          `json:"img_url"`
	CastHash          string          `json:"cast_hash"`
	ContractAddress   string          `json:"contractAddress"`
	ContractAddressDB string          `json:"contract_address"`
	Blockchain        string          `json:"blockchain"`
	TotalSupply       int64           `json:"totalSupply"`
	CirculatingSupply int64           `json:"circulatingSupply"`
	Description       string          `json:"description"`
	Website           string          `json:"website"`
	Explorer          string          `json:"explorer"`
	CreatedAt         *time.Time      `json:"createdAt"`
	DeployedAt        *time.Time      `json:"deployed_at"`
	StartingMarketCap float64         `json:"starting_market_cap"`
	RequestorFID      int64           `json:"requestor_fid"`
	TxHash            string          `json:"tx_hash"`
	PoolAddress       string          `json:"pool_address"`
	Type              string          `json:"type"`
	Pair              string          `json:"pair"`
	ChainID           int64           `json:"chain_id"`
	Metadata          json.RawMessage `json:"metadata,omitempty"`
	DeployConfig      json.RawMessage `json:"deploy_config,omitempty"`
	SocialContext     json.RawMessage `json:"social_context,omitempty"`
	Warnings          json.RawMessage `json:"warnings,omitempty"`
	PoolConfig        json.RawMessage `json:"pool_config,omitempty"`
	MsgSender         string          `json:"msg_sender"`
	FactoryAddress    string          `json:"factory_address"`
	LockerAddress     string          `json:"locker_address"`
	PositionID        *string         `json:"position_id"`
	InsertedAt        time.Time       `json:"inserted_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type StoredTokenPage struct {
	Data       []StoredToken    `json:"data"`
	Pagination StoredPagination `json:"pagination"`
	Timestamp  time.Time        `json:"timestamp"`
}

type StoredPagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

// StoredTokenService serves the persisted mirror of Tally Clank tokens.
type StoredTokenService struct {
	Repo      repository.TokenRepository
	Logger    *zap.Logger
	TargetFID int64
}

func (s *StoredTokenService) List(ctx context.Context, page, limit int) (*StoredTokenPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 12
	}
	offset := (page - 1) * limit

	rows, err := s.Repo.ListTokensByFID(ctx, s.TargetFID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.CountTokensByFID(ctx, s.TargetFID)
	if err != nil {
		return nil, err
	}

	tokens := make([]StoredToken, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, toDisplay(row))
	}

	return &StoredTokenPage{
		Data: tokens,
		Pagination: StoredPagination{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: int64(offset+limit) < total,
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

func toDisplay(row models.ClankerToken) StoredToken {
	token := StoredToken{
		ID:                row.ID,
		Name:              row.Name,
		Symbol:            row.Symbol,
		CastHash:          row.CastHash,
		ContractAddress:   row.ContractAddress,
		ContractAddressDB: row.ContractAddress,
		Blockchain:        blockchainName(row.ChainID),
		TotalSupply:       clankerStandardSupply,
		CirculatingSupply: clankerStandardSupply,
		Description:       metadataDescription(row.Metadata),
		CreatedAt:         row.CreatedAt,
		DeployedAt:        row.DeployedAt,
		RequestorFID:      row.RequestorFID,
		TxHash:            row.TxHash,
		PoolAddress:       row.PoolAddress,
		Type:              row.Type,
		Pair:              row.Pair,
		ChainID:           row.ChainID,
		Metadata:          json.RawMessage(row.Metadata),
		DeployConfig:      json.RawMessage(row.DeployConfig),
		SocialContext:     json.RawMessage(row.SocialContext),
		Warnings:          json.RawMessage(row.Warnings),
		PoolConfig:        json.RawMessage(row.PoolConfig),
		MsgSender:         row.MsgSender,
		FactoryAddress:    row.FactoryAddress,
		LockerAddress:     row.LockerAddress,
		PositionID:        row.PositionID,
		InsertedAt:        row.InsertedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	if row.ImgURL != nil {
		token.ImageURL = *row.ImgURL
		token.ImgURL = *row.ImgURL
	}
	if row.StartingMarketCap != nil {
		mc, _ := row.StartingMarketCap.Float64()
		token.MarketCap = mc
		token.StartingMarketCap = mc
	}
	if row.ContractAddress != "" {
		token.Explorer = fmt.Sprintf("https://basescan.org/token/%s", row.ContractAddress)
	}
	return token
}

func blockchainName(chainID int64) string {
	if chainID == 8453 {
		return "Base"
	}
	return "Ethereum"
}

func metadataDescription(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var meta struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return ""
	}
	return meta.Description
}
