package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Identification QuestionType = "identification"
)

type QuizDifficulty string

const (
	Easy   QuizDifficulty = "easy"
	Medium QuizDifficulty = "medium"
	Hard   QuizDifficulty = "hard"
)

// QuizQuestion 测验题目，整组以JSON数组嵌入 quizzes.questions 列
type QuizQuestion struct {
	ID           uint         `json:"id"`
	Type         QuestionType `json:"type"`
	Question     string       `json:"question"`
	Options      []string     `json:"options,omitempty"` // 仅选择题
	CorrectIndex int          `json:"correctIndex"`      // 选择/判断题答案下标
	Answer       string       `json:"answer,omitempty"`  // 简答题（identification）答案
	Explanation  string       `json:"explanation,omitempty"`
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	UserID        uint           `gorm:"index;not null" json:"userId"`
	FileID        uint           `gorm:"index" json:"fileId"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Difficulty    QuizDifficulty `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	QuestionCount int            `gorm:"default:0" json:"questionCount"`
	Questions     datatypes.JSON `gorm:"type:json" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt 一次完成的测验，入库后不可变
// total_questions 固化提交时刻的题目数
type QuizAttempt struct {
	BaseModel
	UserID           uint           `gorm:"index;not null" json:"userId"`
	QuizID           uint           `gorm:"index;not null" json:"quizId"`
	Score            int            `gorm:"not null" json:"score"`
	TotalQuestions   int            `gorm:"not null" json:"totalQuestions"`
	TimeTakenSeconds int            `gorm:"default:0" json:"timeTakenSeconds"`
	Answers          datatypes.JSON `gorm:"type:json" json:"answers"`     // 题目ID -> 作答
	Correctness      datatypes.JSON `gorm:"type:json" json:"correctness"` // 逐题对错数组
	CompletedAt      time.Time      `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
