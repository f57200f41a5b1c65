package model

import (
	"time"

	"gorm.io/datatypes"
)

// BadgeDefinition is a catalog entry. Seeded once and read-only afterwards.
type BadgeDefinition struct {
	BadgeID     string `gorm:"primaryKey;column:badge_id;type:varchar(64)" json:"badgeId"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Category    string `gorm:"not null;index" json:"category"`
	Tier        string `gorm:"not null" json:"tier"`
	PointsValue int    `gorm:"not null" json:"pointsValue"`
}

// TableName pins the table name.
func (BadgeDefinition) TableName() string { return "badge_definitions" }

// UserBadge records one award. A badge is held at most once per user.
type UserBadge struct {
	ID       uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	Username string         `gorm:"not null;uniqueIndex:idx_user_badge,priority:1" json:"username"`
	BadgeID  string         `gorm:"not null;type:varchar(64);uniqueIndex:idx_user_badge,priority:2" json:"badgeId"`
	EarnedAt time.Time      `gorm:"not null" json:"earnedAt"`
	Metadata datatypes.JSON `json:"metadata"`
}

// TableName pins the table name.
func (UserBadge) TableName() string { return "user_badges" }
