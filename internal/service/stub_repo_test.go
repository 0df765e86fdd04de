package service

import (
	"context"
	"sort"
	"sync"

	"tallyclank/internal/models"
)

// stubRepo is an in-memory repository used across the service tests.
type stubRepo struct {
	mu         sync.Mutex
	tokens     map[string]*models.ClankerToken
	messages   []models.ChatMessage
	syncStates map[string]*models.SyncState
	tableErr   error
	upsertErr  error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		tokens:     map[string]*models.ClankerToken{},
		syncStates: map[string]*models.SyncState{},
	}
}

func (r *stubRepo) CheckTokensTable(ctx context.Context) error {
	return r.tableErr
}

func (r *stubRepo) ExistingTokenIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]struct{}{}
	for _, id := range ids {
		if _, ok := r.tokens[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *stubRepo) UpsertToken(ctx context.Context, item *models.ClankerToken) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.tokens[item.ID] = &copied
	return nil
}

func (r *stubRepo) ListTokensByFID(ctx context.Context, fid int64, limit, offset int) ([]models.ClankerToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ClankerToken
	for _, token := range r.tokens {
		if token.RequestorFID == fid {
			out = append(out, *token)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubRepo) CountTokensByFID(ctx context.Context, fid int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, token := range r.tokens {
		if token.RequestorFID == fid {
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) GetSyncState(ctx context.Context, scope string) (*models.SyncState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncStates[scope], nil
}

func (r *stubRepo) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *state
	r.syncStates[state.Scope] = &copied
	return nil
}

func (r *stubRepo) InsertChatMessage(ctx context.Context, item *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *item)
	return nil
}

func (r *stubRepo) ListChatMessages(ctx context.Context, limit, offset int) ([]models.ChatMessage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.messages))
	// Newest first, like the real store.
	reversed := make([]models.ChatMessage, len(r.messages))
	for i, msg := range r.messages {
		reversed[len(r.messages)-1-i] = msg
	}
	if offset >= len(reversed) {
		return nil, total, nil
	}
	reversed = reversed[offset:]
	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed, total, nil
}

func (r *stubRepo) DeleteAllChatMessages(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.messages))
	r.messages = nil
	return n, nil
}
