package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tallyclank/internal/models"
	"tallyclank/internal/repository"
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidAddress reports whether s is a 0x-prefixed 20-byte hex address.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ErrChatValidation wraps user-input failures so handlers can map them to 400.
var ErrChatValidation = errors.New("chat validation")

type ChatPage struct {
	Messages  []models.ChatMessage `json:"messages"`
	Total     int64                `json:"total"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	Timestamp time.Time            `json:"timestamp"`
}

type ChatService struct {
	Repo       repository.ChatRepository
	Logger     *zap.Logger
	MaxMessage int
	PageLimit  int
}

func (s *ChatService) maxMessage() int {
	if s.MaxMessage > 0 {
		return s.MaxMessage
	}
	return 500
}

// List returns up to limit messages starting at offset, oldest first within
// the page. Storage orders newest first so the page covers the most recent
// messages; the slice is reversed for display.
func (s *ChatService) List(ctx context.Context, limit, offset int) (*ChatPage, error) {
	if limit <= 0 {
		if s.PageLimit > 0 {
			limit = s.PageLimit
		} else {
			limit = 100
		}
	}
	if offset < 0 {
		offset = 0
	}

	messages, total, err := s.Repo.ListChatMessages(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	return &ChatPage{
		Messages:  messages,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Post validates and stores one message. The sender identity is the wallet
// address; the display name is derived from it and never user-supplied.
func (s *ChatService) Post(ctx context.Context, address, message string) (*models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if address == "" || message == "" {
		return nil, fmt.Errorf("%w: Address and message are required", ErrChatValidation)
	}
	// The cap counts characters, not bytes; multibyte messages must not be
	// rejected early.
	if utf8.RuneCountInString(message) > s.maxMessage() {
		return nil, fmt.Errorf("%w: Message must be %d characters or less", ErrChatValidation, s.maxMessage())
	}
	if !ValidAddress(address) {
		return nil, fmt.Errorf("%w: Invalid wallet address format", ErrChatValidation)
	}

	row := &models.ChatMessage{
		ID:          uuid.NewString(),
		Address:     strings.ToLower(address),
		DisplayName: displayName(address),
		Message:     message,
	}
	if err := s.Repo.InsertChatMessage(ctx, row); err != nil {
		return nil, err
	}
	s.Logger.Info("chat message stored", zap.String("id", row.ID), zap.String("address", row.Address))
	return row, nil
}

// Clear removes every message and returns how many were deleted.
func (s *ChatService) Clear(ctx context.Context) (int64, error) {
	return s.Repo.DeleteAllChatMessages(ctx)
}

func displayName(address string) string {
	return address[:6] + "..." + address[len(address)-4:]
}
