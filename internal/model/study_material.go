package model

import "gorm.io/datatypes"

type MaterialType string

const (
	Summary    MaterialType = "summary"
	Flashcards MaterialType = "flashcards"
	Notes      MaterialType = "notes"
)

// StudyMaterial AI生成的学习资料（摘要/抽认卡/笔记）
// 沿用原数据表名 reviewers
// swagger:model StudyMaterial
type StudyMaterial struct {
	BaseModel
	UserID  uint           `gorm:"index;not null" json:"userId"`
	FileID  uint           `gorm:"index" json:"fileId"`
	Title   string         `gorm:"size:255;not null" json:"title"`
	Type    MaterialType   `gorm:"type:enum('summary','flashcards','notes');not null" json:"type"`
	Content datatypes.JSON `gorm:"type:json" json:"content"` // 结构随 Type 变化
}

func (StudyMaterial) TableName() string {
	return "reviewers"
}

// Flashcard content 为 flashcards 时的单元结构
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// NoteSection content 为 notes 时的单元结构
type NoteSection struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}
