package model

// DailyProgress 近7天中某一天的聚合
type DailyProgress struct {
	Date         string  `json:"date"` // 2006-01-02
	AverageScore float64 `json:"averageScore"`
	StudyMinutes int     `json:"studyMinutes"`
	AttemptCount int     `json:"attemptCount"`
}

// DifficultyBreakdown 按难度的测验数与平均分
type DifficultyBreakdown struct {
	Difficulty   QuizDifficulty `json:"difficulty"`
	QuizCount    int            `json:"quizCount"`
	AverageScore float64        `json:"averageScore"`
}

// SubjectPerformance 按学科分组的表现
type SubjectPerformance struct {
	Subject      string  `json:"subject"`
	QuizCount    int     `json:"quizCount"`
	AverageScore float64 `json:"averageScore"`
	StudyMinutes int     `json:"studyMinutes"`
}

// AnalyticsOverview 学习分析概览
type AnalyticsOverview struct {
	TotalFiles          int                   `json:"totalFiles"`
	TotalMaterials      int                   `json:"totalMaterials"`
	TotalQuizzes        int                   `json:"totalQuizzes"`
	TotalAttempts       int                   `json:"totalAttempts"`
	TotalStudyMinutes   int                   `json:"totalStudyMinutes"`
	AverageScore        float64               `json:"averageScore"`
	CurrentStreak       int                   `json:"currentStreak"`
	WeeklyProgress      []DailyProgress       `json:"weeklyProgress"` // 恒为7项，旧到新
	DifficultyBreakdown []DifficultyBreakdown `json:"difficultyBreakdown"`
	SubjectPerformance  []SubjectPerformance  `json:"subjectPerformance"`
}

// QuestionTypeStat 某题型的累计正确率与趋势标签
type QuestionTypeStat struct {
	QuestionType   QuestionType `json:"questionType"`
	TotalCorrect   int          `json:"totalCorrect"`
	TotalQuestions int          `json:"totalQuestions"`
	Percentage     float64      `json:"percentage"`
	Trend          string       `json:"trend"`       // improving, declining, stable
	TrendDelta     float64      `json:"trendDelta"`  // 近3次均值 - 前3次均值
	SampleCount    int          `json:"sampleCount"` // 参与趋势判定的数据点数
}

// ScorePrediction 下次测验得分的启发式估计，不是统计模型
type ScorePrediction struct {
	CurrentAverage float64 `json:"currentAverage"`
	RecentAverage  float64 `json:"recentAverage"`
	Predicted      float64 `json:"predicted"`
	Basis          string  `json:"basis"`
}

// ComparativeStats 相对固定基准的线性换算，基准为演示值而非真实同辈数据
type ComparativeStats struct {
	ScorePercentile     float64 `json:"scorePercentile"`
	StudyTimePercentile float64 `json:"studyTimePercentile"`
	BenchmarkScore      float64 `json:"benchmarkScore"`
	BenchmarkMinutes    int     `json:"benchmarkMinutes"`
}

// AttemptDetail 单次作答在进度视图里的展开
type AttemptDetail struct {
	AttemptID        uint   `json:"attemptId"`
	Score            int    `json:"score"`
	TotalQuestions   int    `json:"totalQuestions"`
	CorrectCount     int    `json:"correctCount"`
	Percentage       int    `json:"percentage"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
	CompletedAt      string `json:"completedAt"`
}

// QuizProgress 单个测验的作答历史与解读
type QuizProgress struct {
	QuizID         uint            `json:"quizId"`
	Title          string          `json:"title"`
	AttemptCount   int             `json:"attemptCount"`
	AverageScore   float64         `json:"averageScore"`
	BestScore      int             `json:"bestScore"`
	BestPercentage int             `json:"bestPercentage"`
	Attempts       []AttemptDetail `json:"attempts"`
	Interpretation string          `json:"interpretation"`
}
