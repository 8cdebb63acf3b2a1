package repository

import (
	"context"
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserRows 分析流水线的原始输入，所有切片保证非nil
type UserRows struct {
	Files     []model.File
	Materials []model.StudyMaterial
	Quizzes   []model.Quiz
	Attempts  []model.QuizAttempt
	Sessions  []model.StudySession
	Streak    *model.LearningStreak // 没有记录时为 nil
}

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// FetchUserRows 并行拉取一个用户的全部原始行
// 单个查询失败只记日志并退化为空集，聚合层永远拿到数组而不是错误
func (r *AnalyticsRepository) FetchUserRows(ctx context.Context, userID uint) *UserRows {
	rows := &UserRows{
		Files:     []model.File{},
		Materials: []model.StudyMaterial{},
		Quizzes:   []model.Quiz{},
		Attempts:  []model.QuizAttempt{},
		Sessions:  []model.StudySession{},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var files []model.File
		if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&files).Error; err != nil {
			logger.Log.Error("analytics: files query failed", zap.Uint("userId", userID), zap.Error(err))
			return nil
		}
		rows.Files = files
		return nil
	})

	g.Go(func() error {
		var materials []model.StudyMaterial
		if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&materials).Error; err != nil {
			logger.Log.Error("analytics: reviewers query failed", zap.Uint("userId", userID), zap.Error(err))
			return nil
		}
		rows.Materials = materials
		return nil
	})

	g.Go(func() error {
		var quizzes []model.Quiz
		if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&quizzes).Error; err != nil {
			logger.Log.Error("analytics: quizzes query failed", zap.Uint("userId", userID), zap.Error(err))
			return nil
		}
		rows.Quizzes = quizzes
		return nil
	})

	g.Go(func() error {
		var attempts []model.QuizAttempt
		if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
			Order("completed_at ASC").Find(&attempts).Error; err != nil {
			logger.Log.Error("analytics: attempts query failed", zap.Uint("userId", userID), zap.Error(err))
			return nil
		}
		rows.Attempts = attempts
		return nil
	})

	g.Go(func() error {
		var sessions []model.StudySession
		if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
			logger.Log.Error("analytics: sessions query failed", zap.Uint("userId", userID), zap.Error(err))
			return nil
		}
		rows.Sessions = sessions
		return nil
	})

	g.Go(func() error {
		var streak model.LearningStreak
		err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&streak).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Log.Error("analytics: streak query failed", zap.Uint("userId", userID), zap.Error(err))
			}
			return nil
		}
		rows.Streak = &streak
		return nil
	})

	// 子查询从不返回错误，这里只是等待全部完成
	g.Wait()

	return rows
}
