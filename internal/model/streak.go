package model

import "time"

// LearningStreak 连续学习天数，按活跃日更新
type LearningStreak struct {
	BaseModel
	UserID           uint      `gorm:"uniqueIndex;not null" json:"userId"`
	CurrentStreak    int       `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int       `gorm:"default:0" json:"longestStreak"`
	LastActivityDate time.Time `json:"lastActivityDate"`
}

func (LearningStreak) TableName() string {
	return "learning_streaks"
}
