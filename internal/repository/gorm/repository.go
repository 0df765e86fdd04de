package gormrepository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tallyclank/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CheckTokensTable(ctx context.Context) error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	var id string
	err := s.db.WithContext(ctx).
		Model(&models.ClankerToken{}).
		Select("id").
		Limit(1).
		Scan(&id).Error
	return err
}

func (s *Store) ExistingTokenIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	if s == nil || s.db == nil || len(ids) == 0 {
		return existing, nil
	}
	var found []string
	err := s.db.WithContext(ctx).
		Model(&models.ClankerToken{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// UpsertToken performs a single atomic insert-on-conflict-update keyed by the
// upstream token id, so a row observed twice never duplicates and concurrent
// syncs cannot race an existence check against the write.
func (s *Store) UpsertToken(ctx context.Context, item *models.ClankerToken) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"created_at",
			"tx_hash",
			"contract_address",
			"name",
			"symbol",
			"supply",
			"img_url",
			"pool_address",
			"cast_hash",
			"type",
			"pair",
			"chain_id",
			"metadata",
			"deploy_config",
			"social_context",
			"requestor_fid",
			"deployed_at",
			"msg_sender",
			"factory_address",
			"locker_address",
			"position_id",
			"warnings",
			"pool_config",
			"starting_market_cap",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListTokensByFID(ctx context.Context, fid int64, limit, offset int) ([]models.ClankerToken, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 12
	}
	if offset < 0 {
		offset = 0
	}
	var items []models.ClankerToken
	err := s.db.WithContext(ctx).
		Model(&models.ClankerToken{}).
		Where("requestor_fid = ?", fid).
		Order("created_at DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTokensByFID(ctx context.Context, fid int64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ClankerToken{}).
		Where("requestor_fid = ?", fid).
		Count(&count).Error
	return count, err
}

func (s *Store) GetSyncState(ctx context.Context, scope string) (*models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var state models.SyncState
	err := s.db.WithContext(ctx).
		Where("scope = ?", scope).
		First(&state).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	if s == nil || s.db == nil || state == nil {
		return nil
	}
	// A failed run must not wipe the last success timestamp.
	columns := []string{"last_attempt_at", "last_error", "stats_json"}
	if state.LastSuccessAt != nil {
		columns = append(columns, "last_success_at")
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(state).Error
}

func (s *Store) InsertChatMessage(ctx context.Context, item *models.ChatMessage) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListChatMessages(ctx context.Context, limit, offset int) ([]models.ChatMessage, int64, error) {
	if s == nil || s.db == nil {
		return nil, 0, nil
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ChatMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.ChatMessage
	err := s.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) DeleteAllChatMessages(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.ChatMessage{})
	return res.RowsAffected, res.Error
}
