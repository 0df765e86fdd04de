package normalize

import (
	"testing"
	"time"
)

func fixedNormalizer() *Normalizer {
	return &Normalizer{
		AssetHost: "https://www.clanker.world",
		Now:       func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestTimestampScaling(t *testing.T) {
	n := fixedNormalizer()
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"seconds", float64(1700000000), 1700000000000},
		{"millis", float64(1700000000000), 1700000000000},
		{"numeric string seconds", "1700000000", 1700000000000},
		{"rfc3339", "2023-11-14T22:13:20Z", 1700000000000},
		{"date only", "2023-11-14", 1699920000000},
	}
	for _, tt := range tests {
		if got := n.Timestamp(tt.in, "tok-1"); got != tt.want {
			t.Fatalf("%s: Timestamp(%v) = %d, want %d", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestTimestampFallbackDeterministic(t *testing.T) {
	n := fixedNormalizer()
	first := n.Timestamp(nil, "clanker-abc123")
	second := n.Timestamp(nil, "clanker-abc123")
	if first != second {
		t.Fatalf("fallback timestamp not stable: %d vs %d", first, second)
	}
	other := n.Timestamp(nil, "clanker-xyz789")
	if other == first {
		t.Fatalf("different ids produced the same fallback timestamp")
	}

	nowMillis := n.now().UnixMilli()
	windowStart := nowMillis - thirtyDaysMillis
	for _, ts := range []int64{first, other} {
		if ts < windowStart || ts >= nowMillis {
			t.Fatalf("fallback timestamp %d outside trailing 30-day window [%d, %d)", ts, windowStart, nowMillis)
		}
	}
}

func TestTimestampFallbackWithoutID(t *testing.T) {
	n := fixedNormalizer()
	ts := n.Timestamp(nil, "")
	nowMillis := n.now().UnixMilli()
	if ts < nowMillis-thirtyDaysMillis || ts >= nowMillis {
		t.Fatalf("random fallback %d outside trailing window", ts)
	}
}

func TestTokenFieldFallbacks(t *testing.T) {
	n := fixedNormalizer()
	raw := map[string]any{
		"id":              "tok-9",
		"name":            "Demo",
		"ticker":          "DMO",
		"current_price":   "1.25",
		"marketCap":       float64(50000),
		"volume_24h":      float64(777),
		"priceChange24h":  float64(-3.5),
		"image_url":       "/assets/demo.png",
		"contractAddress": "0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7",
		"chain_id":        float64(8453),
		"requestor_fid":   float64(1049503),
		"created_at":      "2023-11-14T22:13:20Z",
		"total_supply":    float64(100000000000),
	}
	rec := n.Token(raw)

	if rec.ID != "tok-9" {
		t.Fatalf("id = %q", rec.ID)
	}
	if rec.Symbol != "DMO" {
		t.Fatalf("expected ticker fallback, got %q", rec.Symbol)
	}
	if rec.Price != 1.25 {
		t.Fatalf("expected string price parsed, got %v", rec.Price)
	}
	if rec.ImageURL != "https://www.clanker.world/assets/demo.png" {
		t.Fatalf("image not absolutized: %q", rec.ImageURL)
	}
	if rec.ImgURL != rec.ImageURL {
		t.Fatalf("imageUrl and img_url diverged")
	}
	if rec.ContractAddress != "0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7" || rec.ContractAddrSnake != rec.ContractAddress {
		t.Fatalf("contract address not mirrored: %q / %q", rec.ContractAddress, rec.ContractAddrSnake)
	}
	if rec.Blockchain != "Base" {
		t.Fatalf("chain_id 8453 should map to Base, got %q", rec.Blockchain)
	}
	if rec.RequestorFID != 1049503 {
		t.Fatalf("requestor fid = %d", rec.RequestorFID)
	}
	if rec.CreatedAt != 1700000000000 {
		t.Fatalf("createdAt = %d", rec.CreatedAt)
	}
}

func TestTokenPrecedenceWithinChain(t *testing.T) {
	n := fixedNormalizer()
	raw := map[string]any{
		"id":        "tok-1",
		"img_url":   "https://cdn.example/first.png",
		"image_url": "https://cdn.example/second.png",
		"price":     float64(2),
		"price_usd": float64(3),
	}
	rec := n.Token(raw)
	if rec.ImageURL != "https://cdn.example/first.png" {
		t.Fatalf("img_url should win over image_url, got %q", rec.ImageURL)
	}
	if rec.Price != 2 {
		t.Fatalf("price should win over price_usd, got %v", rec.Price)
	}
}

func TestTokenDefaults(t *testing.T) {
	n := fixedNormalizer()
	rec := n.Token(map[string]any{"name": "Bare"})
	if rec.ID == "" {
		t.Fatalf("missing id should be generated")
	}
	if rec.ContractAddress != ZeroAddress {
		t.Fatalf("missing contract should default to zero address, got %q", rec.ContractAddress)
	}
	if rec.Blockchain != "Ethereum" {
		t.Fatalf("default blockchain = %q", rec.Blockchain)
	}
	if rec.CreatedAt == 0 {
		t.Fatalf("createdAt should always be populated")
	}
}

func TestJSHashMatchesReference(t *testing.T) {
	// Reference values computed with the 32-bit (h << 5) - h + c loop.
	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"abc", 96354},
	}
	for _, tt := range tests {
		if got := jsHash(tt.in); got != tt.want {
			t.Fatalf("jsHash(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
