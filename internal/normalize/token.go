package normalize

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ZeroAddress is the sentinel written when no upstream field carries a
// contract address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

const thirtyDaysMillis = 30 * 24 * 60 * 60 * 1000

// TokenRecord is the canonical token shape every upstream payload is
// projected into. Both camelCase and snake_case variants of the contract
// address and image URL are emitted because the browser code historically
// consumed both.
type TokenRecord struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	MarketCap         float64 `json:"marketCap"`
	Volume            float64 `json:"volume"`
	Change24h         float64 `json:"change24h"`
	ImageURL          string  `json:"imageUrl"`
	ImgURL            string  `json:"img_url"`
	CastHash          string  `json:"cast_hash"`
	ContractAddress   string  `json:"contractAddress"`
	ContractAddrSnake string  `json:"contract_address"`
	Blockchain        string  `json:"blockchain"`
	TotalSupply       float64 `json:"totalSupply"`
	CirculatingSupply float64 `json:"circulatingSupply"`
	Description       string  `json:"description"`
	Website           string  `json:"website"`
	Explorer          string  `json:"explorer"`
	CreatedAt         int64   `json:"createdAt"`
	RequestorFID      int64   `json:"requestor_fid,omitempty"`

	Profile
}

// Profile carries the Farcaster identity enrichment for a token's deployer.
type Profile struct {
	Username       string `json:"warpcast_username"`
	DisplayName    string `json:"warpcast_display_name"`
	Bio            string `json:"warpcast_profile"`
	PfpURL         string `json:"warpcast_pfp_url"`
	FollowerCount  int64  `json:"warpcast_follower_count"`
	FollowingCount int64  `json:"warpcast_following_count"`
}

// Candidate source keys per canonical field, first non-empty wins. This table
// is the single source of truth; the per-route fallback chains that used to
// drift apart all collapse into it.
var (
	idKeys          = []string{"id", "_id", "tokenId"}
	nameKeys        = []string{"name", "tokenName"}
	symbolKeys      = []string{"symbol", "ticker", "tokenSymbol"}
	priceKeys       = []string{"price", "current_price", "currentPrice", "tokenPrice", "price_usd"}
	marketCapKeys   = []string{"market_cap", "marketCap", "marketCapitalization", "market_cap_usd", "starting_market_cap"}
	volumeKeys      = []string{"volume", "volume_24h", "volume24h", "tradingVolume", "volume_usd"}
	changeKeys      = []string{"change_24h", "change24h", "priceChange24h", "price_change_24h", "percent_change_24h", "change"}
	imageKeys       = []string{"img_url", "image_url", "imageUrl", "image", "logo", "icon", "img"}
	contractKeys    = []string{"contract_address", "contractAddress", "contract", "address", "token_address", "tokenAddress"}
	chainKeys       = []string{"blockchain", "chain", "network"}
	totalSupplyKeys = []string{"total_supply", "totalSupply"}
	circSupplyKeys  = []string{"circulating_supply", "circulatingSupply"}
	descriptionKeys = []string{"description", "about"}
	websiteKeys     = []string{"website", "websiteUrl", "website_url"}
	explorerKeys    = []string{"explorer", "explorerUrl", "explorer_url"}
	castHashKeys    = []string{"cast_hash", "deployer", "creator"}
	fidKeys         = []string{"requestor_fid", "fid"}
	createdAtKeys   = []string{"created_at", "createdAt", "creation_time", "timestamp"}
)

// Normalizer projects raw upstream token objects into TokenRecords. It never
// returns an error; every field has a zero default.
type Normalizer struct {
	// AssetHost is prefixed onto relative image URLs ("/...").
	AssetHost string
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (n *Normalizer) now() time.Time {
	if n != nil && n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n *Normalizer) Token(raw map[string]any) TokenRecord {
	id := firstString(raw, idKeys)
	if id == "" {
		// Upstream omitted an id; a generated one is stable for this
		// response only.
		id = uuid.NewString()
	}

	image := n.absoluteURL(firstString(raw, imageKeys))
	contract := firstString(raw, contractKeys)
	if contract == "" {
		contract = ZeroAddress
	}

	rec := TokenRecord{
		ID:                id,
		Name:              firstString(raw, nameKeys),
		Symbol:            firstString(raw, symbolKeys),
		Price:             firstNumber(raw, priceKeys),
		MarketCap:         firstNumber(raw, marketCapKeys),
		Volume:            firstNumber(raw, volumeKeys),
		Change24h:         firstNumber(raw, changeKeys),
		ImageURL:          image,
		ImgURL:            image,
		CastHash:          firstString(raw, castHashKeys),
		ContractAddress:   contract,
		ContractAddrSnake: contract,
		Blockchain:        n.blockchain(raw),
		TotalSupply:       firstNumber(raw, totalSupplyKeys),
		CirculatingSupply: firstNumber(raw, circSupplyKeys),
		Description:       firstString(raw, descriptionKeys),
		Website:           firstString(raw, websiteKeys),
		Explorer:          firstString(raw, explorerKeys),
		RequestorFID:      int64(firstNumber(raw, fidKeys)),
	}

	rawCreated, _ := firstValue(raw, createdAtKeys)
	rec.CreatedAt = n.Timestamp(rawCreated, firstString(raw, idKeys))

	return rec
}

func (n *Normalizer) blockchain(raw map[string]any) string {
	if v := firstString(raw, chainKeys); v != "" {
		return v
	}
	if chainID, ok := numberValue(raw["chain_id"]); ok && int64(chainID) == 8453 {
		return "Base"
	}
	return "Ethereum"
}

func (n *Normalizer) absoluteURL(u string) string {
	if u == "" || !strings.HasPrefix(u, "/") {
		return u
	}
	host := ""
	if n != nil {
		host = strings.TrimSuffix(n.AssetHost, "/")
	}
	return host + u
}

// Timestamp normalizes a raw created-at value into epoch milliseconds.
// Numeric values below 1e10 are taken as seconds, larger ones as
// milliseconds. Strings are parsed as dates and then as numeric strings.
// When nothing yields a usable timestamp, a pseudo-timestamp is derived by
// hashing the id into the trailing 30-day window so the same token sorts
// identically across polls; with no id at all the fallback is random in that
// window. The displayed date in the fallback cases is fictitious.
func (n *Normalizer) Timestamp(raw any, id string) int64 {
	if ms, ok := timestampOf(raw); ok {
		return ms
	}
	nowMillis := n.now().UnixMilli()
	windowStart := nowMillis - thirtyDaysMillis
	if id != "" {
		offset := int64(jsHash(id))
		if offset < 0 {
			offset = -offset
		}
		return windowStart + offset%thirtyDaysMillis
	}
	return windowStart + rand.Int63n(thirtyDaysMillis)
}

func timestampOf(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		return scaleEpoch(int64(v)), true
	case int64:
		return scaleEpoch(v), true
	case int:
		return scaleEpoch(int64(v)), true
	case string:
		if v == "" {
			return 0, false
		}
		for _, layout := range []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05.999999",
			"2006-01-02 15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UnixMilli(), true
			}
		}
		if num, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return scaleEpoch(num), true
		}
	}
	return 0, false
}

func scaleEpoch(t int64) int64 {
	if t < 10_000_000_000 {
		return t * 1000
	}
	return t
}

// jsHash reproduces the classic `h = (h << 5) - h + c` string hash with
// 32-bit wraparound, keeping pseudo-timestamps stable for ids that were
// hashed by earlier revisions of the dashboard.
func jsHash(s string) int32 {
	var h int32
	for _, c := range []byte(s) {
		h = (h << 5) - h + int32(c)
	}
	return h
}
