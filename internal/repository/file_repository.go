package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type FileRepository struct {
	DB *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) Create(file *model.File) error {
	return r.DB.Create(file).Error
}

func (r *FileRepository) FindByIDAndUser(id, userID uint) (*model.File, error) {
	var file model.File
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) FindByUser(userID uint) ([]model.File, error) {
	var files []model.File
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *FileRepository) Delete(id uint) error {
	return r.DB.Delete(&model.File{}, id).Error
}
