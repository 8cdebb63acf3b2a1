package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

func (r *StreakRepository) FindByUser(userID uint) (*model.LearningStreak, error) {
	var streak model.LearningStreak
	err := r.DB.Where("user_id = ?", userID).First(&streak).Error
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *StreakRepository) Save(streak *model.LearningStreak) error {
	return r.DB.Save(streak).Error
}

func (r *StreakRepository) Create(streak *model.LearningStreak) error {
	return r.DB.Create(streak).Error
}
