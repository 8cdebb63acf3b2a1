package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PerformanceRepository struct {
	DB *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) *PerformanceRepository {
	return &PerformanceRepository{DB: db}
}

func (r *PerformanceRepository) CreateTypeRow(row *model.QuizQuestionTypePerformance) error {
	return r.DB.Create(row).Error
}

// RecentByType 某题型按时间倒序的单次表现记录，供趋势窗口使用
func (r *PerformanceRepository) RecentByType(userID uint, questionType model.QuestionType, limit int) ([]model.QuizQuestionTypePerformance, error) {
	var rows []model.QuizQuestionTypePerformance
	err := r.DB.Where("user_id = ? AND question_type = ?", userID, questionType).
		Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *PerformanceRepository) ListCumulativeByUser(userID uint) ([]model.CumulativeQuestionTypePerformance, error) {
	var rows []model.CumulativeQuestionTypePerformance
	err := r.DB.Where("user_id = ?", userID).Order("question_type ASC").Find(&rows).Error
	return rows, err
}

// UpsertCumulative 以单条原子 upsert 维护累计行，避免读改写竞态丢更新
// percentage 先赋值，使其读到更新前的累计值再加增量
func (r *PerformanceRepository) UpsertCumulative(userID uint, questionType model.QuestionType, correct, total int) error {
	if total <= 0 {
		return nil
	}

	row := model.CumulativeQuestionTypePerformance{
		UserID:         userID,
		QuestionType:   questionType,
		TotalCorrect:   correct,
		TotalQuestions: total,
		Percentage:     float64(correct) * 100 / float64(total),
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_type"}},
		DoUpdates: clause.Set{
			{
				Column: clause.Column{Name: "percentage"},
				Value:  gorm.Expr("(total_correct + ?) * 100.0 / (total_questions + ?)", correct, total),
			},
			{
				Column: clause.Column{Name: "total_correct"},
				Value:  gorm.Expr("total_correct + ?", correct),
			},
			{
				Column: clause.Column{Name: "total_questions"},
				Value:  gorm.Expr("total_questions + ?", total),
			},
		},
	}).Create(&row).Error
}
