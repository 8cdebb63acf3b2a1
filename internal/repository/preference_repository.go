package repository

import (
	"errors"
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

// GetOrCreate 没有记录时落一条默认偏好
func (r *PreferenceRepository) GetOrCreate(userID uint) (*model.UserPreference, error) {
	var pref model.UserPreference
	err := r.DB.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = model.UserPreference{UserID: userID}
		if err := r.DB.Create(&pref).Error; err != nil {
			return nil, err
		}
		return &pref, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *PreferenceRepository) Save(pref *model.UserPreference) error {
	return r.DB.Save(pref).Error
}
