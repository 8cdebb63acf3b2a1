package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

// 对比基准为固定演示值，不来自真实同辈数据
const (
	benchmarkScore   = 75.0
	benchmarkMinutes = 180
)

// 趋势判定窗口与阈值：近3次均值与前3次均值差超过±5个百分点才改变标签
const (
	trendWindow    = 3
	trendThreshold = 5.0
)

type AnalyticsService struct {
	AnalyticsRepo   *repository.AnalyticsRepository
	PerformanceRepo *repository.PerformanceRepository
	QuizRepo        *repository.QuizRepository
	AttemptRepo     *repository.AttemptRepository
	Streaks         *StreakService
}

func NewAnalyticsService(
	analyticsRepo *repository.AnalyticsRepository,
	performanceRepo *repository.PerformanceRepository,
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	streaks *StreakService,
) *AnalyticsService {
	return &AnalyticsService{
		AnalyticsRepo:   analyticsRepo,
		PerformanceRepo: performanceRepo,
		QuizRepo:        quizRepo,
		AttemptRepo:     attemptRepo,
		Streaks:         streaks,
	}
}

// attemptPercent 单次作答得分率（0-100）
func attemptPercent(a *model.QuizAttempt) float64 {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalQuestions) * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Overview 概览聚合，缺失数据统一以0值呈现，永不报错
func (s *AnalyticsService) Overview(ctx context.Context, userID uint) *model.AnalyticsOverview {
	rows := s.AnalyticsRepo.FetchUserRows(ctx, userID)

	overview := &model.AnalyticsOverview{
		TotalFiles:          len(rows.Files),
		TotalMaterials:      len(rows.Materials),
		TotalQuizzes:        len(rows.Quizzes),
		TotalAttempts:       len(rows.Attempts),
		WeeklyProgress:      weeklyProgress(rows.Attempts, rows.Sessions),
		DifficultyBreakdown: difficultyBreakdown(rows.Quizzes, rows.Attempts),
		SubjectPerformance:  subjectPerformance(rows),
	}

	for _, session := range rows.Sessions {
		overview.TotalStudyMinutes += session.DurationMinutes
	}

	if len(rows.Attempts) > 0 {
		percents := make([]float64, 0, len(rows.Attempts))
		for i := range rows.Attempts {
			percents = append(percents, attemptPercent(&rows.Attempts[i]))
		}
		overview.AverageScore = round1(mean(percents))
	}

	if rows.Streak != nil {
		overview.CurrentStreak = rows.Streak.CurrentStreak
	}

	return overview
}

// weeklyProgress 以日历日分桶，恒定返回7项（含今天，旧到新），无数据的天为0值
func weeklyProgress(attempts []model.QuizAttempt, sessions []model.StudySession) []model.DailyProgress {
	days := make([]model.DailyProgress, 7)
	index := map[string]int{}

	today := util.StartOfDay(util.Now())
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6)
		key := day.Format(util.DateFormat)
		days[i] = model.DailyProgress{Date: key}
		index[key] = i
	}

	scoreSums := make([]float64, 7)
	for i := range attempts {
		key := attempts[i].CompletedAt.Format(util.DateFormat)
		if pos, ok := index[key]; ok {
			days[pos].AttemptCount++
			scoreSums[pos] += attemptPercent(&attempts[i])
		}
	}
	for i := range days {
		if days[i].AttemptCount > 0 {
			days[i].AverageScore = round1(scoreSums[i] / float64(days[i].AttemptCount))
		}
	}

	for _, session := range sessions {
		key := session.StartedAt.Format(util.DateFormat)
		if pos, ok := index[key]; ok {
			days[pos].StudyMinutes += session.DurationMinutes
		}
	}

	return days
}

func difficultyBreakdown(quizzes []model.Quiz, attempts []model.QuizAttempt) []model.DifficultyBreakdown {
	difficultyOf := map[uint]model.QuizDifficulty{}
	counts := map[model.QuizDifficulty]int{}
	for i := range quizzes {
		difficultyOf[quizzes[i].ID] = quizzes[i].Difficulty
		counts[quizzes[i].Difficulty]++
	}

	sums := map[model.QuizDifficulty]float64{}
	attemptCounts := map[model.QuizDifficulty]int{}
	for i := range attempts {
		difficulty, ok := difficultyOf[attempts[i].QuizID]
		if !ok {
			continue
		}
		sums[difficulty] += attemptPercent(&attempts[i])
		attemptCounts[difficulty]++
	}

	result := []model.DifficultyBreakdown{}
	for _, difficulty := range []model.QuizDifficulty{model.Easy, model.Medium, model.Hard} {
		if counts[difficulty] == 0 {
			continue
		}
		entry := model.DifficultyBreakdown{
			Difficulty: difficulty,
			QuizCount:  counts[difficulty],
		}
		if attemptCounts[difficulty] > 0 {
			entry.AverageScore = round1(sums[difficulty] / float64(attemptCounts[difficulty]))
		}
		result = append(result, entry)
	}
	return result
}

// subjectPerformance 学科为空时退回文件名推断，再退回 "General"
func subjectPerformance(rows *repository.UserRows) []model.SubjectPerformance {
	subjectOfFile := map[uint]string{}
	for i := range rows.Files {
		subject := rows.Files[i].Subject
		if subject == "" {
			subject = util.SubjectFromFilename(rows.Files[i].OriginalName)
		}
		if subject == "" {
			subject = "General"
		}
		subjectOfFile[rows.Files[i].ID] = subject
	}

	subjectOfQuiz := map[uint]string{}
	quizCounts := map[string]int{}
	for i := range rows.Quizzes {
		subject, ok := subjectOfFile[rows.Quizzes[i].FileID]
		if !ok {
			subject = "General"
		}
		subjectOfQuiz[rows.Quizzes[i].ID] = subject
		quizCounts[subject]++
	}

	sums := map[string]float64{}
	attemptCounts := map[string]int{}
	for i := range rows.Attempts {
		subject, ok := subjectOfQuiz[rows.Attempts[i].QuizID]
		if !ok {
			continue
		}
		sums[subject] += attemptPercent(&rows.Attempts[i])
		attemptCounts[subject]++
	}

	// 学习时长按测验会话的资源归属计入对应学科
	minutes := map[string]int{}
	for i := range rows.Sessions {
		if rows.Sessions[i].ActivityType != model.ActivityQuiz {
			continue
		}
		if subject, ok := subjectOfQuiz[rows.Sessions[i].ResourceID]; ok {
			minutes[subject] += rows.Sessions[i].DurationMinutes
		}
	}

	subjects := make([]string, 0, len(quizCounts))
	for subject := range quizCounts {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	result := []model.SubjectPerformance{}
	for _, subject := range subjects {
		entry := model.SubjectPerformance{
			Subject:      subject,
			QuizCount:    quizCounts[subject],
			StudyMinutes: minutes[subject],
		}
		if attemptCounts[subject] > 0 {
			entry.AverageScore = round1(sums[subject] / float64(attemptCounts[subject]))
		}
		result = append(result, entry)
	}
	return result
}

// QuestionTypeStats 累计正确率 + 趋势标签
// 数据点不足 2*trendWindow 时不做趋势判定，标签保持 stable
func (s *AnalyticsService) QuestionTypeStats(userID uint) ([]model.QuestionTypeStat, error) {
	cumulative, err := s.PerformanceRepo.ListCumulativeByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := make([]model.QuestionTypeStat, 0, len(cumulative))
	for _, row := range cumulative {
		stat := model.QuestionTypeStat{
			QuestionType:   row.QuestionType,
			TotalCorrect:   row.TotalCorrect,
			TotalQuestions: row.TotalQuestions,
			Percentage:     round1(row.Percentage),
			Trend:          "stable",
		}

		recent, err := s.PerformanceRepo.RecentByType(userID, row.QuestionType, 2*trendWindow)
		if err != nil {
			return nil, err
		}
		stat.SampleCount = len(recent)

		if len(recent) >= 2*trendWindow {
			// recent 按时间倒序：前半是近3次，后半是再往前3次
			stat.TrendDelta = round1(windowMean(recent[:trendWindow]) - windowMean(recent[trendWindow:2*trendWindow]))
			switch {
			case stat.TrendDelta > trendThreshold:
				stat.Trend = "improving"
			case stat.TrendDelta < -trendThreshold:
				stat.Trend = "declining"
			}
		}

		stats = append(stats, stat)
	}
	return stats, nil
}

func windowMean(rows []model.QuizQuestionTypePerformance) float64 {
	percents := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.Total > 0 {
			percents = append(percents, float64(row.Correct)*100/float64(row.Total))
		}
	}
	return mean(percents)
}

// Prediction 下次得分的启发式估计：整体均值向近3次均值靠拢70%
// 这是加权外推而不是统计模型，Basis 字段向调用方言明
func (s *AnalyticsService) Prediction(ctx context.Context, userID uint) *model.ScorePrediction {
	rows := s.AnalyticsRepo.FetchUserRows(ctx, userID)

	prediction := &model.ScorePrediction{
		Basis: "weighted blend of overall and recent averages, not a statistical model",
	}
	if len(rows.Attempts) == 0 {
		return prediction
	}

	percents := make([]float64, 0, len(rows.Attempts))
	for i := range rows.Attempts {
		percents = append(percents, attemptPercent(&rows.Attempts[i]))
	}

	overall, recentMean, predicted := predictScore(percents)
	prediction.CurrentAverage = round1(overall)
	prediction.RecentAverage = round1(recentMean)
	prediction.Predicted = round1(predicted)
	return prediction
}

// predictScore 整体均值向最近几次的均值靠拢70%，结果夹在[0,100]
func predictScore(percents []float64) (overall, recentMean, predicted float64) {
	overall = mean(percents)
	recent := percents
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}
	recentMean = mean(recent)

	predicted = overall + 0.7*(recentMean-overall)
	if predicted < 0 {
		predicted = 0
	}
	if predicted > 100 {
		predicted = 100
	}
	return overall, recentMean, predicted
}

// Comparative 相对固定基准的线性换算，封顶99
func (s *AnalyticsService) Comparative(ctx context.Context, userID uint) *model.ComparativeStats {
	rows := s.AnalyticsRepo.FetchUserRows(ctx, userID)

	stats := &model.ComparativeStats{
		BenchmarkScore:   benchmarkScore,
		BenchmarkMinutes: benchmarkMinutes,
	}

	if len(rows.Attempts) > 0 {
		percents := make([]float64, 0, len(rows.Attempts))
		for i := range rows.Attempts {
			percents = append(percents, attemptPercent(&rows.Attempts[i]))
		}
		stats.ScorePercentile = percentileAgainst(mean(percents), benchmarkScore)
	}

	totalMinutes := 0
	for _, session := range rows.Sessions {
		totalMinutes += session.DurationMinutes
	}
	if totalMinutes > 0 {
		stats.StudyTimePercentile = percentileAgainst(float64(totalMinutes), benchmarkMinutes)
	}

	return stats
}

// percentileAgainst 以基准值为50分位做线性换算
func percentileAgainst(value, benchmark float64) float64 {
	if benchmark <= 0 {
		return 0
	}
	p := value / benchmark * 50
	if p > 99 {
		p = 99
	}
	if p < 0 {
		p = 0
	}
	return round1(p)
}

// QuizProgress 单个测验的作答历史、最好成绩与文字解读
func (s *AnalyticsService) QuizProgress(quizID, userID uint) (*model.QuizProgress, error) {
	quiz, err := s.QuizRepo.FindByIDAndUser(quizID, userID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}

	attempts, err := s.AttemptRepo.FindByQuizAndUser(quizID, userID)
	if err != nil {
		return nil, err
	}

	progress := &model.QuizProgress{
		QuizID:       quiz.ID,
		Title:        quiz.Title,
		AttemptCount: len(attempts),
		Attempts:     []model.AttemptDetail{},
	}

	if len(attempts) == 0 {
		progress.Interpretation = "No attempts yet. Take the quiz to start tracking your progress."
		return progress, nil
	}

	scoreSum := 0.0
	bestPercentage := -1
	for i := range attempts {
		attempt := &attempts[i]
		percentage := int(math.Round(attemptPercent(attempt)))
		scoreSum += attemptPercent(attempt)

		if percentage > bestPercentage {
			bestPercentage = percentage
			progress.BestScore = attempt.Score
			progress.BestPercentage = percentage
		}

		progress.Attempts = append(progress.Attempts, model.AttemptDetail{
			AttemptID:        attempt.ID,
			Score:            attempt.Score,
			TotalQuestions:   attempt.TotalQuestions,
			CorrectCount:     correctCount(attempt),
			Percentage:       percentage,
			TimeTakenSeconds: attempt.TimeTakenSeconds,
			CompletedAt:      attempt.CompletedAt.Format(util.TimeFormat),
		})
	}

	progress.AverageScore = round1(scoreSum / float64(len(attempts)))
	progress.Interpretation = interpret(progress)
	return progress, nil
}

// correctCount 优先数逐题对错数组，旧数据没有时退回score
func correctCount(attempt *model.QuizAttempt) int {
	var correctness []bool
	if err := json.Unmarshal(attempt.Correctness, &correctness); err == nil && len(correctness) > 0 {
		count := 0
		for _, ok := range correctness {
			if ok {
				count++
			}
		}
		return count
	}
	return attempt.Score
}

// interpret 进度文字解读：首考单独措辞，多次作答按最好成绩分档
func interpret(progress *model.QuizProgress) string {
	latest := progress.Attempts[len(progress.Attempts)-1]

	if progress.AttemptCount == 1 {
		return fmt.Sprintf("This was your first attempt, you scored %d%%. %s",
			latest.Percentage, gradeComment(latest.Percentage))
	}

	return fmt.Sprintf("Across %d attempts your best score is %d%% and your latest is %d%%. %s",
		progress.AttemptCount, progress.BestPercentage, latest.Percentage,
		gradeComment(progress.BestPercentage))
}

func gradeComment(percentage int) string {
	switch {
	case percentage >= 90:
		return "Excellent work, you have mastered this material."
	case percentage >= 80:
		return "Great job, just a little more practice to perfection."
	case percentage >= 70:
		return "Good effort, review the questions you missed."
	case percentage >= 60:
		return "You are getting there, another review session should help."
	default:
		return "This topic needs more study time before the next attempt."
	}
}

// Streak 当前与最长连续学习天数
func (s *AnalyticsService) Streak(userID uint) (*model.LearningStreak, error) {
	return s.Streaks.Current(userID)
}
