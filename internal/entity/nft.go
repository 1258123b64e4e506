package entity

import (
	"database/sql"
	"time"
)

// NFTAwardTier is a static milestone catalog row. Tiers are processed in
// ascending point threshold order everywhere.
type NFTAwardTier struct {
	Base
	Tier           int
	Name           string
	Description    string
	PointThreshold int `gorm:"unique"`
	ImageURL       string
}

// UserNFTAward marks a tier as earned. Token fields stay null until
// on-chain minting ships.
type UserNFTAward struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	NFTAwardTierID string       `gorm:"primaryKey"`
	NFTAwardTier   NFTAwardTier `gorm:"foreignKey:NFTAwardTierID"`

	AwardedAt       time.Time
	TokenID         sql.NullString
	ContractAddress sql.NullString
}
