package service

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"time"

	"gorm.io/gorm"
)

type StreakService struct {
	StreakRepo *repository.StreakRepository
}

func NewStreakService(streakRepo *repository.StreakRepository) *StreakService {
	return &StreakService{StreakRepo: streakRepo}
}

// sameDay 以服务器时区的日历日比较，跨时区客户端统一按服务端时间计
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Touch 记一次当日活跃
// 当天已记过不重复累加；昨天活跃则连续天数+1；中断则重置为1
func (s *StreakService) Touch(userID uint) (*model.LearningStreak, error) {
	now := time.Now()

	streak, err := s.StreakRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = &model.LearningStreak{
			UserID:           userID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: now,
		}
		if err := s.StreakRepo.Create(streak); err != nil {
			return nil, err
		}
		return streak, nil
	}
	if err != nil {
		return nil, err
	}

	if sameDay(streak.LastActivityDate, now) {
		return streak, nil
	}

	if sameDay(streak.LastActivityDate, now.AddDate(0, 0, -1)) {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastActivityDate = now

	if err := s.StreakRepo.Save(streak); err != nil {
		return nil, err
	}
	return streak, nil
}

// Current 查询当前连续天数；最近活跃日既不是今天也不是昨天时视为已断，展示为0
func (s *StreakService) Current(userID uint) (*model.LearningStreak, error) {
	streak, err := s.StreakRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.LearningStreak{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !sameDay(streak.LastActivityDate, now) && !sameDay(streak.LastActivityDate, now.AddDate(0, 0, -1)) {
		streak.CurrentStreak = 0
	}
	return streak, nil
}
