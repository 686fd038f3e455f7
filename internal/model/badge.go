package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeLevel is a named rank in the fixed badge ladder.
type BadgeLevel string

const (
	BadgeNewbie     BadgeLevel = "Newbie"
	BadgeExplorer   BadgeLevel = "Explorer"
	BadgeAchiever   BadgeLevel = "Achiever"
	BadgeSpecialist BadgeLevel = "Specialist"
	BadgeExpert     BadgeLevel = "Expert"
	BadgeMaster     BadgeLevel = "Master"
)

// BadgeThreshold pairs a tier with the minimum cumulative points required to
// hold it.
type BadgeThreshold struct {
	Level  BadgeLevel
	Points int
}

// BadgeLadder is the fixed, ascending tier table. Order is significant: tier
// resolution walks it from the top down.
var BadgeLadder = []BadgeThreshold{
	{BadgeNewbie, 20},
	{BadgeExplorer, 40},
	{BadgeAchiever, 60},
	{BadgeSpecialist, 80},
	{BadgeExpert, 100},
	{BadgeMaster, 120},
}

// Badge is an immutable historical record of a tier being reached.
type Badge struct {
	BadgeID  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"badge_id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Name     BadgeLevel `gorm:"not null" json:"name"`
	Points   int        `gorm:"not null" json:"points"`
	EarnedAt time.Time  `gorm:"not null" json:"earned_at"`
}

func (Badge) TableName() string {
	return "badges"
}
