package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FileService struct {
	FileRepo     *repository.FileRepository
	QuizRepo     *repository.QuizRepository
	MaterialRepo *repository.MaterialRepository
	Storage      *StorageService
	Cfg          *config.Config
}

func NewFileService(
	fileRepo *repository.FileRepository,
	quizRepo *repository.QuizRepository,
	materialRepo *repository.MaterialRepository,
	storage *StorageService,
	cfg *config.Config,
) *FileService {
	return &FileService{
		FileRepo:     fileRepo,
		QuizRepo:     quizRepo,
		MaterialRepo: materialRepo,
		Storage:      storage,
		Cfg:          cfg,
	}
}

// Upload 校验大小与内容类型，文本类文档顺带抽取正文
func (s *FileService) Upload(ctx context.Context, userID uint, header *multipart.FileHeader, subject string) (*model.File, error) {
	if header.Size > s.Cfg.Upload.MaxSizeBytes {
		return nil, util.ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 深度验证 MIME 类型
	mimeType, err := util.ValidateMimeType(src, util.AllowedDocumentTypes)
	if err != nil {
		return nil, fmt.Errorf("非法的文件内容: %v", err)
	}
	// 重置读取指针
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	extracted := ""
	if util.IsTextLike(mimeType) {
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, err
		}
		extracted = string(data)
		if seeker, ok := src.(io.Seeker); ok {
			seeker.Seek(0, io.SeekStart)
		}
	}

	ext := filepath.Ext(header.Filename)
	storagePath := "documents/" + time.Now().Format("20060102150405") + "_" + uuid.New().String()[:8] + ext

	if _, err := s.Storage.Upload(ctx, storagePath, src, header.Size, mimeType); err != nil {
		return nil, err
	}

	if strings.TrimSpace(subject) == "" {
		subject = util.SubjectFromFilename(header.Filename)
	}

	file := &model.File{
		UserID:        userID,
		OriginalName:  header.Filename,
		StoragePath:   storagePath,
		MimeType:      mimeType,
		Size:          header.Size,
		ExtractedText: extracted,
		Subject:       subject,
	}

	if err := s.FileRepo.Create(file); err != nil {
		// 行没落库就把对象清掉，避免孤儿文件
		if derr := s.Storage.Delete(ctx, storagePath); derr != nil {
			logger.Log.Warn("orphan object cleanup failed", zap.String("path", storagePath), zap.Error(derr))
		}
		return nil, err
	}

	return file, nil
}

func (s *FileService) List(userID uint) ([]model.File, error) {
	return s.FileRepo.FindByUser(userID)
}

func (s *FileService) Get(id, userID uint) (*model.File, error) {
	return s.FileRepo.FindByIDAndUser(id, userID)
}

// Delete 级联：先删对象存储，再删依赖的测验与资料行，最后删文件行
func (s *FileService) Delete(ctx context.Context, id, userID uint) error {
	file, err := s.FileRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return util.ErrFileNotFound
	}

	if err := s.Storage.Delete(ctx, file.StoragePath); err != nil {
		// 对象可能已经没了，记日志继续删行
		logger.Log.Warn("storage object delete failed", zap.String("path", file.StoragePath), zap.Error(err))
	}

	if err := s.QuizRepo.DeleteByFile(file.ID); err != nil {
		return err
	}
	if err := s.MaterialRepo.DeleteByFile(file.ID); err != nil {
		return err
	}

	return s.FileRepo.Delete(file.ID)
}

// SignedURL 生成短时效的下载链接
func (s *FileService) SignedURL(ctx context.Context, id, userID uint) (string, error) {
	file, err := s.FileRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return "", util.ErrFileNotFound
	}

	expiry := time.Duration(s.Cfg.Upload.URLExpiryMinutes) * time.Minute
	return s.Storage.SignedURL(ctx, file.StoragePath, expiry)
}
