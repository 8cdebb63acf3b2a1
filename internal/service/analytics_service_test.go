package service

import (
	"strings"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"testing"
	"time"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := util.Now
	util.Now = func() time.Time { return at }
	t.Cleanup(func() { util.Now = prev })
}

func TestWeeklyProgressAlwaysSevenDays(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 30, 0, 0, time.Local)
	fixedClock(t, now)

	days := weeklyProgress(nil, nil)
	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if days[0].Date != "2026-08-21" {
		t.Errorf("first day = %s, want 2026-08-21", days[0].Date)
	}
	if days[6].Date != "2026-08-27" {
		t.Errorf("last day = %s, want today 2026-08-27", days[6].Date)
	}
	for _, d := range days {
		if d.AttemptCount != 0 || d.AverageScore != 0 || d.StudyMinutes != 0 {
			t.Errorf("empty data should produce zero values, got %+v", d)
		}
	}
}

func TestWeeklyProgressBucketsByCalendarDay(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)
	fixedClock(t, now)

	attempts := []model.QuizAttempt{
		// 今天凌晨与晚上，同一个桶
		{Score: 8, TotalQuestions: 10, CompletedAt: time.Date(2026, 8, 27, 0, 15, 0, 0, time.Local)},
		{Score: 6, TotalQuestions: 10, CompletedAt: time.Date(2026, 8, 27, 23, 45, 0, 0, time.Local)},
		// 窗口外，忽略
		{Score: 10, TotalQuestions: 10, CompletedAt: time.Date(2026, 8, 19, 12, 0, 0, 0, time.Local)},
	}
	sessions := []model.StudySession{
		{StartedAt: time.Date(2026, 8, 27, 8, 0, 0, 0, time.Local), DurationMinutes: 25},
		{StartedAt: time.Date(2026, 8, 25, 8, 0, 0, 0, time.Local), DurationMinutes: 40},
	}

	days := weeklyProgress(attempts, sessions)

	today := days[6]
	if today.AttemptCount != 2 {
		t.Errorf("today attempts = %d, want 2", today.AttemptCount)
	}
	if today.AverageScore != 70 {
		t.Errorf("today average = %v, want 70", today.AverageScore)
	}
	if today.StudyMinutes != 25 {
		t.Errorf("today minutes = %d, want 25", today.StudyMinutes)
	}
	if days[4].StudyMinutes != 40 {
		t.Errorf("two days ago minutes = %d, want 40", days[4].StudyMinutes)
	}
}

func TestPredictScore(t *testing.T) {
	tests := []struct {
		name          string
		percents      []float64
		wantOverall   float64
		wantRecent    float64
		wantPredicted float64
	}{
		{"no attempts", nil, 0, 0, 0},
		{"single attempt", []float64{80}, 80, 80, 80},
		// overall 60, recent3 (70,80,90)=80, predicted 60+0.7*20=74
		{"improving run", []float64{30, 30, 60, 70, 80, 90}, 60, 80, 74},
		// 全对时不超过100
		{"clamped at 100", []float64{100, 100, 100}, 100, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overall, recent, predicted := predictScore(tt.percents)
			if overall != tt.wantOverall || recent != tt.wantRecent || predicted != tt.wantPredicted {
				t.Errorf("predictScore(%v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.percents, overall, recent, predicted, tt.wantOverall, tt.wantRecent, tt.wantPredicted)
			}
		})
	}
}

func TestWindowMeanTrendThreshold(t *testing.T) {
	perf := func(correct, total int) model.QuizQuestionTypePerformance {
		return model.QuizQuestionTypePerformance{Correct: correct, Total: total}
	}

	// 近3次 [90,92,91] vs 前3次 [70,72,71]：差值远超+5，属于improving区间
	recent := []model.QuizQuestionTypePerformance{perf(90, 100), perf(92, 100), perf(91, 100)}
	prior := []model.QuizQuestionTypePerformance{perf(70, 100), perf(72, 100), perf(71, 100)}
	delta := windowMean(recent) - windowMean(prior)
	if delta <= trendThreshold {
		t.Errorf("delta = %v, should exceed +%v", delta, trendThreshold)
	}

	// 近3次 [80,81,79] vs 前3次 [78,80,82]：差值在±5以内，保持stable
	recent = []model.QuizQuestionTypePerformance{perf(80, 100), perf(81, 100), perf(79, 100)}
	prior = []model.QuizQuestionTypePerformance{perf(78, 100), perf(80, 100), perf(82, 100)}
	delta = windowMean(recent) - windowMean(prior)
	if delta > trendThreshold || delta < -trendThreshold {
		t.Errorf("delta = %v, should stay within ±%v", delta, trendThreshold)
	}
}

func TestPercentileAgainst(t *testing.T) {
	tests := []struct {
		value     float64
		benchmark float64
		want      float64
	}{
		{75, 75, 50},    // 基准线即50分位
		{37.5, 75, 25},  // 一半基准
		{300, 75, 99},   // 封顶99
		{0, 75, 0},      // 没有数据
		{90, 180, 25},   // 学习时长基准
	}

	for _, tt := range tests {
		if got := percentileAgainst(tt.value, tt.benchmark); got != tt.want {
			t.Errorf("percentileAgainst(%v, %v) = %v, want %v", tt.value, tt.benchmark, got, tt.want)
		}
	}
}

func TestSubjectPerformanceFallsBackToFilename(t *testing.T) {
	rows := &repository.UserRows{
		Files: []model.File{
			{BaseModel: model.BaseModel{ID: 1}, OriginalName: "organic_chemistry.txt"},
			{BaseModel: model.BaseModel{ID: 2}, OriginalName: "x.txt", Subject: "Physics"},
		},
		Quizzes: []model.Quiz{
			{BaseModel: model.BaseModel{ID: 10}, FileID: 1},
			{BaseModel: model.BaseModel{ID: 11}, FileID: 2},
		},
		Attempts: []model.QuizAttempt{
			{QuizID: 10, Score: 9, TotalQuestions: 10},
			{QuizID: 11, Score: 5, TotalQuestions: 10},
		},
	}

	result := subjectPerformance(rows)
	if len(result) != 2 {
		t.Fatalf("got %d subjects, want 2", len(result))
	}

	bySubject := map[string]model.SubjectPerformance{}
	for _, entry := range result {
		bySubject[entry.Subject] = entry
	}

	chem, ok := bySubject["Organic Chemistry"]
	if !ok {
		t.Fatalf("missing filename-derived subject, got %v", bySubject)
	}
	if chem.AverageScore != 90 {
		t.Errorf("chem average = %v, want 90", chem.AverageScore)
	}
	if physics := bySubject["Physics"]; physics.AverageScore != 50 {
		t.Errorf("physics average = %v, want 50", physics.AverageScore)
	}
}

func TestGradeComment(t *testing.T) {
	tests := []struct {
		percentage int
		contains   string
	}{
		{95, "mastered"},
		{85, "Great job"},
		{73, "Good effort"},
		{61, "getting there"},
		{40, "more study time"},
	}

	for _, tt := range tests {
		got := gradeComment(tt.percentage)
		if !containsFold(got, tt.contains) {
			t.Errorf("gradeComment(%d) = %q, want substring %q", tt.percentage, got, tt.contains)
		}
	}
}

func TestInterpretFirstAttempt(t *testing.T) {
	progress := &model.QuizProgress{
		AttemptCount: 1,
		Attempts:     []model.AttemptDetail{{Score: 22, TotalQuestions: 30, Percentage: 73}},
	}

	got := interpret(progress)
	if !containsFold(got, "first attempt") {
		t.Errorf("single attempt interpretation %q should mention first attempt", got)
	}
	if !containsFold(got, "73%") {
		t.Errorf("interpretation %q should include the percentage", got)
	}
}

func TestInterpretMultipleAttempts(t *testing.T) {
	progress := &model.QuizProgress{
		AttemptCount:   3,
		BestPercentage: 90,
		Attempts: []model.AttemptDetail{
			{Percentage: 60}, {Percentage: 90}, {Percentage: 85},
		},
	}

	got := interpret(progress)
	if containsFold(got, "first attempt") {
		t.Errorf("multi-attempt interpretation %q should not mention first attempt", got)
	}
	if !containsFold(got, "90%") {
		t.Errorf("interpretation %q should include the best percentage", got)
	}
}

func TestCorrectCount(t *testing.T) {
	withArray := &model.QuizAttempt{Score: 5, Correctness: []byte(`[true,false,true,true]`)}
	if got := correctCount(withArray); got != 3 {
		t.Errorf("correctCount with array = %d, want 3", got)
	}

	legacy := &model.QuizAttempt{Score: 5}
	if got := correctCount(legacy); got != 5 {
		t.Errorf("correctCount without array = %d, want score 5", got)
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
