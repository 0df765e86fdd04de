package clanker

// DeployRequest is the payload proxied to the deploy endpoint after local
// validation. Defaults are filled in by the handler, not here.
type DeployRequest struct {
	Name                     string   `json:"name"`
	Symbol                   string   `json:"symbol"`
	Image                    string   `json:"image"`
	RequestorAddress         string   `json:"requestorAddress"`
	RequestKey               string   `json:"requestKey"`
	CreatorRewardsPercentage int      `json:"creatorRewardsPercentage"`
	TokenPair                string   `json:"tokenPair"`
	Description              string   `json:"description"`
	SocialMediaUrls          []string `json:"socialMediaUrls"`
	Platform                 string   `json:"platform"`
	CreatorRewardsAdmin      string   `json:"creatorRewardsAdmin"`
	InitialMarketCap         float64  `json:"initialMarketCap"`
}

// APIToken is the typed shape of a listing row the sync job persists.
type APIToken struct {
	ID                any            `json:"id"`
	CreatedAt         string         `json:"created_at"`
	TxHash            string         `json:"tx_hash"`
	ContractAddress   string         `json:"contract_address"`
	Name              string         `json:"name"`
	Symbol            string         `json:"symbol"`
	Supply            string         `json:"supply"`
	ImgURL            *string        `json:"img_url"`
	PoolAddress       string         `json:"pool_address"`
	CastHash          string         `json:"cast_hash"`
	Type              string         `json:"type"`
	Pair              string         `json:"pair"`
	ChainID           int64          `json:"chain_id"`
	Metadata          map[string]any `json:"metadata"`
	DeployConfig      map[string]any `json:"deploy_config"`
	SocialContext     map[string]any `json:"social_context"`
	RequestorFID      int64          `json:"requestor_fid"`
	DeployedAt        string         `json:"deployed_at"`
	MsgSender         string         `json:"msg_sender"`
	FactoryAddress    string         `json:"factory_address"`
	LockerAddress     string         `json:"locker_address"`
	PositionID        *string        `json:"position_id"`
	Warnings          []string       `json:"warnings"`
	PoolConfig        map[string]any `json:"pool_config"`
	StartingMarketCap float64        `json:"starting_market_cap"`
}
