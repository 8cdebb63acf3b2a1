package model

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityType string

const (
	ActivityQuiz   ActivityType = "quiz"
	ActivityUpload ActivityType = "upload"
	ActivityReview ActivityType = "review"
)

// StudySession 一段被跟踪的学习时长
// 约束：每个用户同一时刻至多一条 ended_at IS NULL 的记录
type StudySession struct {
	BaseModel
	UserID          uint           `gorm:"index;not null" json:"userId"`
	ActivityType    ActivityType   `gorm:"type:enum('quiz','upload','review');not null" json:"activityType"`
	ResourceID      uint           `gorm:"default:0" json:"resourceId"`
	ResourceName    string         `gorm:"size:255" json:"resourceName"`
	DurationMinutes int            `gorm:"default:0" json:"durationMinutes"`
	StartedAt       time.Time      `json:"startedAt"`
	EndedAt         *time.Time     `json:"endedAt"`
	Metadata        datatypes.JSON `gorm:"type:json" json:"metadata"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
