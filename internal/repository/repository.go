package repository

import (
	"context"

	"tallyclank/internal/models"
)

type TokenRepository interface {
	// CheckTokensTable is the cheap connectivity probe the sync job runs
	// before talking to the upstream API.
	CheckTokensTable(ctx context.Context) error
	ExistingTokenIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
	UpsertToken(ctx context.Context, item *models.ClankerToken) error
	ListTokensByFID(ctx context.Context, fid int64, limit, offset int) ([]models.ClankerToken, error)
	CountTokensByFID(ctx context.Context, fid int64) (int64, error)

	GetSyncState(ctx context.Context, scope string) (*models.SyncState, error)
	SaveSyncState(ctx context.Context, state *models.SyncState) error
}

type ChatRepository interface {
	InsertChatMessage(ctx context.Context, item *models.ChatMessage) error
	ListChatMessages(ctx context.Context, limit, offset int) ([]models.ChatMessage, int64, error)
	DeleteAllChatMessages(ctx context.Context) (int64, error)
}

type Repository interface {
	TokenRepository
	ChatRepository
}
