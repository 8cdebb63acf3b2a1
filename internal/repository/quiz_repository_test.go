package repository

import (
	"encoding/json"
	"studyhub_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAttemptTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库绑定单个连接，连接池扩容会拿到空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.QuizAttempt{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestAttemptRoundTripFreezesQuestionCount(t *testing.T) {
	repo := NewAttemptRepository(newAttemptTestDB(t))

	questions := []model.QuizQuestion{
		{ID: 1, Type: model.MultipleChoice, Question: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1},
		{ID: 2, Type: model.TrueFalse, Question: "水往低处流", CorrectIndex: 0},
		{ID: 3, Type: model.Identification, Question: "细胞的能量工厂", Answer: "线粒体"},
	}

	answers, err := json.Marshal(map[uint]string{1: "4", 2: "true", 3: "线粒体"})
	require.NoError(t, err)
	correctness, err := json.Marshal([]bool{true, true, false})
	require.NoError(t, err)

	completedAt := time.Date(2026, 8, 27, 10, 30, 0, 0, time.Local)
	require.NoError(t, repo.Create(&model.QuizAttempt{
		UserID:           1,
		QuizID:           7,
		Score:            2,
		TotalQuestions:   len(questions),
		TimeTakenSeconds: 95,
		Answers:          datatypes.JSON(answers),
		Correctness:      datatypes.JSON(correctness),
		CompletedAt:      completedAt,
	}))

	got, err := repo.FindByQuizAndUser(7, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// total_questions 固化提交时刻的题目数
	require.Equal(t, len(questions), got[0].TotalQuestions)
	require.Equal(t, 2, got[0].Score)
	require.Equal(t, 95, got[0].TimeTakenSeconds)
	require.WithinDuration(t, completedAt, got[0].CompletedAt, time.Second)

	require.JSONEq(t, string(answers), string(got[0].Answers))

	var backCorrect []bool
	require.NoError(t, json.Unmarshal(got[0].Correctness, &backCorrect))
	require.Equal(t, []bool{true, true, false}, backCorrect)
}

func TestAttemptsStayIntactAsMoreArrive(t *testing.T) {
	repo := NewAttemptRepository(newAttemptTestDB(t))

	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)
	for i, score := range []int{3, 5, 4} {
		require.NoError(t, repo.Create(&model.QuizAttempt{
			UserID:         1,
			QuizID:         7,
			Score:          score,
			TotalQuestions: 5,
			CompletedAt:    base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := repo.FindByQuizAndUser(7, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// 按完成时间升序，早先的记录原样保留
	require.Equal(t, 3, got[0].Score)
	require.Equal(t, 5, got[1].Score)
	require.Equal(t, 4, got[2].Score)
	for _, a := range got {
		require.Equal(t, 5, a.TotalQuestions)
	}
}

func TestFindByQuizAndUserScopesToBoth(t *testing.T) {
	repo := NewAttemptRepository(newAttemptTestDB(t))

	require.NoError(t, repo.Create(&model.QuizAttempt{UserID: 1, QuizID: 7, Score: 4, TotalQuestions: 5, CompletedAt: time.Now()}))
	require.NoError(t, repo.Create(&model.QuizAttempt{UserID: 2, QuizID: 7, Score: 1, TotalQuestions: 5, CompletedAt: time.Now()}))
	require.NoError(t, repo.Create(&model.QuizAttempt{UserID: 1, QuizID: 8, Score: 2, TotalQuestions: 5, CompletedAt: time.Now()}))

	got, err := repo.FindByQuizAndUser(7, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 4, got[0].Score)
}
