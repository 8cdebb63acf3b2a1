package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.StudyMaterial) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByIDAndUser(id, userID uint) (*model.StudyMaterial, error) {
	var material model.StudyMaterial
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) FindByUser(userID uint) ([]model.StudyMaterial, error) {
	var materials []model.StudyMaterial
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.StudyMaterial{}, id).Error
}

func (r *MaterialRepository) DeleteByFile(fileID uint) error {
	return r.DB.Where("file_id = ?", fileID).Delete(&model.StudyMaterial{}).Error
}
