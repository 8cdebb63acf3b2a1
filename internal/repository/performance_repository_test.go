package repository

import (
	"studyhub_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newPerformanceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库绑定单个连接，连接池扩容会拿到空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.QuizQuestionTypePerformance{},
		&model.CumulativeQuestionTypePerformance{},
	))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestUpsertCumulativeCreatesThenAccumulates(t *testing.T) {
	repo := NewPerformanceRepository(newPerformanceTestDB(t))

	require.NoError(t, repo.UpsertCumulative(1, model.MultipleChoice, 3, 5))

	rows, err := repo.ListCumulativeByUser(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 3, rows[0].TotalCorrect)
	require.Equal(t, 5, rows[0].TotalQuestions)
	require.InDelta(t, 60.0, rows[0].Percentage, 0.001)

	require.NoError(t, repo.UpsertCumulative(1, model.MultipleChoice, 4, 5))

	rows, err = repo.ListCumulativeByUser(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 7, rows[0].TotalCorrect)
	require.Equal(t, 10, rows[0].TotalQuestions)
	require.InDelta(t, 70.0, rows[0].Percentage, 0.001)
}

func TestUpsertCumulativeKeysOnUserAndType(t *testing.T) {
	repo := NewPerformanceRepository(newPerformanceTestDB(t))

	require.NoError(t, repo.UpsertCumulative(1, model.MultipleChoice, 2, 4))
	require.NoError(t, repo.UpsertCumulative(1, model.Identification, 1, 2))
	require.NoError(t, repo.UpsertCumulative(2, model.MultipleChoice, 4, 4))

	user1, err := repo.ListCumulativeByUser(1)
	require.NoError(t, err)
	require.Len(t, user1, 2)

	user2, err := repo.ListCumulativeByUser(2)
	require.NoError(t, err)
	require.Len(t, user2, 1)
	require.Equal(t, 4, user2[0].TotalCorrect)
}

func TestUpsertCumulativeIgnoresEmptySubmission(t *testing.T) {
	repo := NewPerformanceRepository(newPerformanceTestDB(t))

	require.NoError(t, repo.UpsertCumulative(1, model.TrueFalse, 0, 0))

	rows, err := repo.ListCumulativeByUser(1)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestRecentByTypeOrdersNewestFirst(t *testing.T) {
	db := newPerformanceTestDB(t)
	repo := NewPerformanceRepository(db)

	for i := 1; i <= 8; i++ {
		require.NoError(t, repo.CreateTypeRow(&model.QuizQuestionTypePerformance{
			UserID:       1,
			AttemptID:    uint(i),
			QuestionType: model.MultipleChoice,
			Correct:      i,
			Total:        10,
		}))
	}

	rows, err := repo.RecentByType(1, model.MultipleChoice, 6)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	// 最近的 attempt 在前
	require.Equal(t, uint(8), rows[0].AttemptID)
	require.Equal(t, uint(3), rows[len(rows)-1].AttemptID)
}
