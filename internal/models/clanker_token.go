package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ClankerToken mirrors one row of the upstream token listing for the tokens
// deployed through Tally Clank. The structured upstream sub-objects (metadata,
// deploy config, social context, pool config) are kept as jsonb so the sync
// job survives upstream schema drift without migrations.
type ClankerToken struct {
	ID                string           `gorm:"primaryKey;type:text"`
	CreatedAt         *time.Time       `gorm:"type:timestamptz;index"`
	TxHash            string           `gorm:"type:text;not null"`
	ContractAddress   string           `gorm:"type:text;index;not null"`
	Name              string           `gorm:"type:text;not null"`
	Symbol            string           `gorm:"type:text;not null"`
	Supply            string           `gorm:"type:text"`
	ImgURL            *string          `gorm:"type:text"`
	PoolAddress       string           `gorm:"type:text"`
	CastHash          string           `gorm:"type:text"`
	Type              string           `gorm:"type:text"`
	Pair              string           `gorm:"type:text"`
	ChainID           int64            `gorm:"not null;default:0"`
	Metadata          datatypes.JSON   `gorm:"type:jsonb"`
	DeployConfig      datatypes.JSON   `gorm:"type:jsonb"`
	SocialContext     datatypes.JSON   `gorm:"type:jsonb"`
	RequestorFID      int64            `gorm:"index;not null;default:0"`
	DeployedAt        *time.Time       `gorm:"type:timestamptz"`
	MsgSender         string           `gorm:"type:text"`
	FactoryAddress    string           `gorm:"type:text"`
	LockerAddress     string           `gorm:"type:text"`
	PositionID        *string          `gorm:"type:text"`
	Warnings          datatypes.JSON   `gorm:"type:jsonb"`
	PoolConfig        datatypes.JSON   `gorm:"type:jsonb"`
	StartingMarketCap *decimal.Decimal `gorm:"type:numeric(30,10)"`
	InsertedAt        time.Time        `gorm:"type:timestamptz;not null;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"type:timestamptz;not null;autoUpdateTime"`
}

func (ClankerToken) TableName() string {
	return "clanker_tokens"
}
