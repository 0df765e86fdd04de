package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tallyclank/internal/models"
)

func storedFixture(id string, fid int64) *models.ClankerToken {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	img := "https://cdn.example/" + id + ".png"
	mc := decimal.NewFromInt(10)
	return &models.ClankerToken{
		ID:                id,
		CreatedAt:         &created,
		TxHash:            "0xabc",
		ContractAddress:   "0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7",
		Name:              "Alpha",
		Symbol:            "ALP",
		ImgURL:            &img,
		ChainID:           8453,
		Metadata:          datatypes.JSON(`{"description":"a demo token"}`),
		RequestorFID:      fid,
		StartingMarketCap: &mc,
	}
}

func TestStoredTokenListTransform(t *testing.T) {
	repo := newStubRepo()
	_ = repo.UpsertToken(context.Background(), storedFixture("tok-1", testFID))
	_ = repo.UpsertToken(context.Background(), storedFixture("tok-2", 42))

	svc := &StoredTokenService{Repo: repo, Logger: zap.NewNop(), TargetFID: testFID}
	page, err := svc.List(context.Background(), 1, 12)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("only target-fid rows should be listed, got %d", len(page.Data))
	}

	token := page.Data[0]
	if token.Blockchain != "Base" {
		t.Fatalf("blockchain = %q", token.Blockchain)
	}
	if token.Price != 0 || token.Volume != 0 || token.Change24h != 0 {
		t.Fatalf("unsampled market fields must be zero: %+v", token)
	}
	if token.MarketCap != 10 || token.StartingMarketCap != 10 {
		t.Fatalf("market cap from stored starting cap: %+v", token)
	}
	if token.TotalSupply != clankerStandardSupply || token.CirculatingSupply != clankerStandardSupply {
		t.Fatalf("supply defaults wrong: %+v", token)
	}
	if token.Explorer != "https://basescan.org/token/0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7" {
		t.Fatalf("explorer = %q", token.Explorer)
	}
	if token.Description != "a demo token" {
		t.Fatalf("metadata description not extracted: %q", token.Description)
	}
	if token.ImageURL == "" || token.ImageURL != token.ImgURL {
		t.Fatalf("image fields wrong: %q / %q", token.ImageURL, token.ImgURL)
	}

	if page.Pagination.Total != 1 || page.Pagination.HasMore {
		t.Fatalf("pagination: %+v", page.Pagination)
	}
}

func TestStoredTokenListHasMore(t *testing.T) {
	repo := newStubRepo()
	for _, id := range []string{"tok-1", "tok-2", "tok-3"} {
		_ = repo.UpsertToken(context.Background(), storedFixture(id, testFID))
	}

	svc := &StoredTokenService{Repo: repo, Logger: zap.NewNop(), TargetFID: testFID}
	page, err := svc.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Data) != 2 || !page.Pagination.HasMore {
		t.Fatalf("expected 2 rows with more remaining: %+v", page.Pagination)
	}

	last, err := svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(last.Data) != 1 || last.Pagination.HasMore {
		t.Fatalf("expected final page: %+v", last.Pagination)
	}
}
