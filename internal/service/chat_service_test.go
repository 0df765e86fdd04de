package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const testAddress = "0xAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAa"

func newChatService() (*ChatService, *stubRepo) {
	repo := newStubRepo()
	return &ChatService{Repo: repo, Logger: zap.NewNop()}, repo
}

func TestChatPostStoresNormalizedMessage(t *testing.T) {
	svc, repo := newChatService()

	row, err := svc.Post(context.Background(), testAddress, "  hello world  ")
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if row.ID == "" {
		t.Fatalf("id not generated")
	}
	if row.Address != strings.ToLower(testAddress) {
		t.Fatalf("address not lowercased: %q", row.Address)
	}
	if row.Message != "hello world" {
		t.Fatalf("message not trimmed: %q", row.Message)
	}
	if row.DisplayName != "0xAaAa...AaAa" {
		t.Fatalf("display name = %q", row.DisplayName)
	}
	if len(repo.messages) != 1 {
		t.Fatalf("message not persisted")
	}
}

func TestChatPostValidation(t *testing.T) {
	svc, repo := newChatService()

	tests := []struct {
		name    string
		address string
		message string
	}{
		{"missing address", "", "hi"},
		{"missing message", testAddress, ""},
		{"whitespace-only message", testAddress, "   \n\t  "},
		{"short address", "0x1234", "hi"},
		{"non-hex address", "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ", "hi"},
		{"too long", testAddress, strings.Repeat("x", 501)},
		{"too long multibyte", testAddress, strings.Repeat("日", 501)},
	}
	for _, tt := range tests {
		if _, err := svc.Post(context.Background(), tt.address, tt.message); !errors.Is(err, ErrChatValidation) {
			t.Fatalf("%s: expected validation error, got %v", tt.name, err)
		}
	}
	if len(repo.messages) != 0 {
		t.Fatalf("invalid messages must not be persisted")
	}

	// 500 characters exactly is allowed, counted in runes, so a multibyte
	// message well past 500 bytes still passes.
	if _, err := svc.Post(context.Background(), testAddress, strings.Repeat("x", 500)); err != nil {
		t.Fatalf("500-char message should pass: %v", err)
	}
	if _, err := svc.Post(context.Background(), testAddress, strings.Repeat("日", 500)); err != nil {
		t.Fatalf("500-rune multibyte message should pass: %v", err)
	}
}

func TestChatListOldestFirst(t *testing.T) {
	svc, _ := newChatService()
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		if _, err := svc.Post(ctx, testAddress, msg); err != nil {
			t.Fatalf("post %q: %v", msg, err)
		}
	}

	page, err := svc.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || page.Limit != 2 {
		t.Fatalf("pagination: total %d limit %d", page.Total, page.Limit)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("got %d messages", len(page.Messages))
	}
	// The page covers the newest messages, displayed oldest first.
	if page.Messages[0].Message != "second" || page.Messages[1].Message != "third" {
		t.Fatalf("wrong order: %q, %q", page.Messages[0].Message, page.Messages[1].Message)
	}
}

func TestChatClear(t *testing.T) {
	svc, repo := newChatService()
	ctx := context.Background()

	if _, err := svc.Post(ctx, testAddress, "bye"); err != nil {
		t.Fatalf("post: %v", err)
	}
	deleted, err := svc.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 1 || len(repo.messages) != 0 {
		t.Fatalf("clear removed %d, left %d", deleted, len(repo.messages))
	}
}

func TestValidAddress(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{testAddress, true},
		{strings.ToLower(testAddress), true},
		{"0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7", true},
		{"23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7", false},
		{"0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidAddress(tt.in); got != tt.want {
			t.Fatalf("ValidAddress(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
