package service

import (
	"context"
	"strings"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type MaterialService struct {
	MaterialRepo *repository.MaterialRepository
	FileRepo     *repository.FileRepository
	Generation   *GenerationService
}

func NewMaterialService(
	materialRepo *repository.MaterialRepository,
	fileRepo *repository.FileRepository,
	generation *GenerationService,
) *MaterialService {
	return &MaterialService{
		MaterialRepo: materialRepo,
		FileRepo:     fileRepo,
		Generation:   generation,
	}
}

type GenerateMaterialRequest struct {
	FileID uint               `json:"fileId" binding:"required"`
	Type   model.MaterialType `json:"type"`
	Title  string             `json:"title"`
}

// Generate 基于文档生成学习资料并落库
func (s *MaterialService) Generate(ctx context.Context, userID uint, req GenerateMaterialRequest) (*model.StudyMaterial, error) {
	file, err := s.FileRepo.FindByIDAndUser(req.FileID, userID)
	if err != nil {
		return nil, util.ErrFileNotFound
	}

	if req.Type == "" {
		req.Type = model.Summary
	}

	content, err := s.Generation.GenerateMaterial(ctx, file, req.Type)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = util.SubjectFromFilename(file.OriginalName) + " " + materialLabel(req.Type)
	}

	material := &model.StudyMaterial{
		UserID:  userID,
		FileID:  file.ID,
		Title:   title,
		Type:    req.Type,
		Content: content,
	}

	if err := s.MaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func materialLabel(t model.MaterialType) string {
	switch t {
	case model.Flashcards:
		return "Flashcards"
	case model.Notes:
		return "Notes"
	default:
		return "Summary"
	}
}

func (s *MaterialService) List(userID uint) ([]model.StudyMaterial, error) {
	return s.MaterialRepo.FindByUser(userID)
}

func (s *MaterialService) Get(id, userID uint) (*model.StudyMaterial, error) {
	material, err := s.MaterialRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, util.ErrMaterialNotFound
	}
	return material, nil
}

func (s *MaterialService) Delete(id, userID uint) error {
	if _, err := s.MaterialRepo.FindByIDAndUser(id, userID); err != nil {
		return util.ErrMaterialNotFound
	}
	return s.MaterialRepo.Delete(id)
}
