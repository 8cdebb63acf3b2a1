package model

// QuizQuestionTypePerformance 单次提交里某题型的对/总计数，趋势分析的原始数据
type QuizQuestionTypePerformance struct {
	BaseModel
	UserID       uint         `gorm:"index;not null" json:"userId"`
	AttemptID    uint         `gorm:"index;not null" json:"attemptId"`
	QuestionType QuestionType `gorm:"size:50;not null" json:"questionType"`
	Correct      int          `gorm:"default:0" json:"correct"`
	Total        int          `gorm:"default:0" json:"total"`
}

func (QuizQuestionTypePerformance) TableName() string {
	return "quiz_question_type_performance"
}

// CumulativeQuestionTypePerformance 按 (用户, 题型) 的累计计数
// 由原子 upsert 维护，增量恰好记一次
type CumulativeQuestionTypePerformance struct {
	BaseModel
	UserID         uint         `gorm:"uniqueIndex:idx_user_qtype;not null" json:"userId"`
	QuestionType   QuestionType `gorm:"size:50;uniqueIndex:idx_user_qtype;not null" json:"questionType"`
	TotalCorrect   int          `gorm:"default:0" json:"totalCorrect"`
	TotalQuestions int          `gorm:"default:0" json:"totalQuestions"`
	Percentage     float64      `gorm:"default:0" json:"percentage"`
}

func (CumulativeQuestionTypePerformance) TableName() string {
	return "cumulative_question_type_performance"
}
