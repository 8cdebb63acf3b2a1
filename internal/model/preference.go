package model

import "gorm.io/datatypes"

// UserPreference 展示类偏好设置
type UserPreference struct {
	BaseModel
	UserID           uint           `gorm:"uniqueIndex;not null" json:"userId"`
	Theme            string         `gorm:"size:20;default:'light'" json:"theme"`
	DailyGoalMinutes int            `gorm:"default:30" json:"dailyGoalMinutes"`
	Extra            datatypes.JSON `gorm:"type:json" json:"extra"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
