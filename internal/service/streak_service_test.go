package service

import (
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStreakService(t *testing.T) (*StreakService, *repository.StreakRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.LearningStreak{}))

	t.Cleanup(func() { sqlDB.Close() })

	repo := repository.NewStreakRepository(db)
	return NewStreakService(repo), repo
}

func TestTouchStartsStreakAtOne(t *testing.T) {
	svc, _ := newStreakService(t)

	streak, err := svc.Touch(1)
	require.NoError(t, err)
	require.Equal(t, 1, streak.CurrentStreak)
	require.Equal(t, 1, streak.LongestStreak)
}

func TestTouchSameDayDoesNotDoubleCount(t *testing.T) {
	svc, _ := newStreakService(t)

	_, err := svc.Touch(1)
	require.NoError(t, err)

	streak, err := svc.Touch(1)
	require.NoError(t, err)
	require.Equal(t, 1, streak.CurrentStreak)
}

func TestTouchExtendsAfterYesterday(t *testing.T) {
	svc, repo := newStreakService(t)

	seed := &model.LearningStreak{
		UserID:           1,
		CurrentStreak:    3,
		LongestStreak:    3,
		LastActivityDate: time.Now().AddDate(0, 0, -1),
	}
	require.NoError(t, repo.Create(seed))

	streak, err := svc.Touch(1)
	require.NoError(t, err)
	require.Equal(t, 4, streak.CurrentStreak)
	require.Equal(t, 4, streak.LongestStreak)
}

func TestTouchResetsAfterGap(t *testing.T) {
	svc, repo := newStreakService(t)

	seed := &model.LearningStreak{
		UserID:           1,
		CurrentStreak:    6,
		LongestStreak:    9,
		LastActivityDate: time.Now().AddDate(0, 0, -3),
	}
	require.NoError(t, repo.Create(seed))

	streak, err := svc.Touch(1)
	require.NoError(t, err)
	require.Equal(t, 1, streak.CurrentStreak)
	require.Equal(t, 9, streak.LongestStreak)
}

func TestCurrentReportsZeroWhenBroken(t *testing.T) {
	svc, repo := newStreakService(t)

	seed := &model.LearningStreak{
		UserID:           1,
		CurrentStreak:    5,
		LongestStreak:    5,
		LastActivityDate: time.Now().AddDate(0, 0, -4),
	}
	require.NoError(t, repo.Create(seed))

	streak, err := svc.Current(1)
	require.NoError(t, err)
	require.Equal(t, 0, streak.CurrentStreak)
	require.Equal(t, 5, streak.LongestStreak)
}

func TestCurrentWithoutRecordIsZeroValue(t *testing.T) {
	svc, _ := newStreakService(t)

	streak, err := svc.Current(42)
	require.NoError(t, err)
	require.Equal(t, 0, streak.CurrentStreak)
	require.Equal(t, 0, streak.LongestStreak)
}
