package service

import (
	"context"
	"encoding/json"
	"strings"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"time"
)

type QuizService struct {
	QuizRepo        *repository.QuizRepository
	AttemptRepo     *repository.AttemptRepository
	FileRepo        *repository.FileRepository
	PerformanceRepo *repository.PerformanceRepository
	Generation      *GenerationService
	Sessions        *SessionService
	Streaks         *StreakService
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	fileRepo *repository.FileRepository,
	performanceRepo *repository.PerformanceRepository,
	generation *GenerationService,
	sessions *SessionService,
	streaks *StreakService,
) *QuizService {
	return &QuizService{
		QuizRepo:        quizRepo,
		AttemptRepo:     attemptRepo,
		FileRepo:        fileRepo,
		PerformanceRepo: performanceRepo,
		Generation:      generation,
		Sessions:        sessions,
		Streaks:         streaks,
	}
}

type GenerateQuizRequest struct {
	FileID        uint                 `json:"fileId" binding:"required"`
	Title         string               `json:"title"`
	Difficulty    model.QuizDifficulty `json:"difficulty"`
	QuestionCount int                  `json:"questionCount"`
}

// GenerateQuiz 基于文档抽取文本生成测验并落库
// 生成内容解析失败时错误原样上抛（与资料路径不同，这里没有mock回退）
func (s *QuizService) GenerateQuiz(ctx context.Context, userID uint, req GenerateQuizRequest) (*model.Quiz, error) {
	file, err := s.FileRepo.FindByIDAndUser(req.FileID, userID)
	if err != nil {
		return nil, util.ErrFileNotFound
	}

	if req.Difficulty == "" {
		req.Difficulty = model.Medium
	}
	if req.QuestionCount <= 0 {
		req.QuestionCount = 10
	}

	questions, err := s.Generation.GenerateQuizQuestions(ctx, file, req.Difficulty, req.QuestionCount)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = util.SubjectFromFilename(file.OriginalName) + " Quiz"
	}

	data, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		UserID:        userID,
		FileID:        file.ID,
		Title:         title,
		Difficulty:    req.Difficulty,
		QuestionCount: len(questions),
		Questions:     data,
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	return quiz, nil
}

func (s *QuizService) List(userID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindByUser(userID)
}

func (s *QuizService) Get(id, userID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizService) Delete(id, userID uint) error {
	if _, err := s.QuizRepo.FindByIDAndUser(id, userID); err != nil {
		return util.ErrQuizNotFound
	}
	return s.QuizRepo.Delete(id)
}

type UpdateQuizRequest struct {
	Title     string               `json:"title"`
	Questions []model.QuizQuestion `json:"questions"`
}

// ValidateQuestions 编辑器规则：至少一题，选择类至少两个选项且答案下标有效
func ValidateQuestions(questions []model.QuizQuestion) error {
	if len(questions) == 0 {
		return util.ErrQuizNeedsQuestion
	}

	for _, q := range questions {
		switch q.Type {
		case model.MultipleChoice, model.TrueFalse:
			if len(q.Options) < 2 {
				return util.ErrQuestionNeedsTwo
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				return util.ErrBadCorrectIndex
			}
		}
	}
	return nil
}

func (s *QuizService) Update(id, userID uint, req UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}

	if err := ValidateQuestions(req.Questions); err != nil {
		return nil, err
	}

	for i := range req.Questions {
		req.Questions[i].ID = uint(i + 1)
	}

	data, err := json.Marshal(req.Questions)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) != "" {
		quiz.Title = req.Title
	}
	quiz.Questions = data
	quiz.QuestionCount = len(req.Questions)

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

type SubmittedAnswer struct {
	SelectedIndex *int   `json:"selectedIndex,omitempty"` // 选择/判断题
	Text          string `json:"text,omitempty"`          // 简答题
}

type QuizSubmission struct {
	Answers          map[uint]SubmittedAnswer `json:"answers" binding:"required"`
	TimeTakenSeconds int                      `json:"timeTakenSeconds"`
}

type SubmitResult struct {
	AttemptID   uint   `json:"attemptId"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Wrong       int    `json:"wrong"`
	Percentage  int    `json:"percentage"`
	Correctness []bool `json:"correctness"`
	TimeTaken   int    `json:"timeTakenSeconds"`
	Streak      int    `json:"streak"`
}

// Submit 判分并保存一次作答，同时更新题型累计、学习连续天数和学习时长
// total_questions 固化提交时刻的题目数；attempt 行此后不再变更
func (s *QuizService) Submit(ctx context.Context, userID, quizID uint, submission QuizSubmission) (*SubmitResult, error) {
	quiz, err := s.QuizRepo.FindByIDAndUser(quizID, userID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}

	var questions []model.QuizQuestion
	if err := json.Unmarshal(quiz.Questions, &questions); err != nil {
		return nil, err
	}

	correctness := make([]bool, len(questions))
	typeCorrect := map[model.QuestionType]int{}
	typeTotal := map[model.QuestionType]int{}
	score := 0

	for i, q := range questions {
		typeTotal[q.Type]++
		answer, answered := submission.Answers[q.ID]
		if !answered {
			continue
		}
		if gradeAnswer(q, answer) {
			correctness[i] = true
			typeCorrect[q.Type]++
			score++
		}
	}

	answersJSON, err := json.Marshal(submission.Answers)
	if err != nil {
		return nil, err
	}
	correctnessJSON, err := json.Marshal(correctness)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:           userID,
		QuizID:           quiz.ID,
		Score:            score,
		TotalQuestions:   len(questions),
		TimeTakenSeconds: submission.TimeTakenSeconds,
		Answers:          answersJSON,
		Correctness:      correctnessJSON,
		CompletedAt:      time.Now(),
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	// 题型明细 + 累计 upsert，失败上抛给提交方
	for qtype, total := range typeTotal {
		row := &model.QuizQuestionTypePerformance{
			UserID:       userID,
			AttemptID:    attempt.ID,
			QuestionType: qtype,
			Correct:      typeCorrect[qtype],
			Total:        total,
		}
		if err := s.PerformanceRepo.CreateTypeRow(row); err != nil {
			return nil, err
		}
		if err := s.PerformanceRepo.UpsertCumulative(userID, qtype, typeCorrect[qtype], total); err != nil {
			return nil, err
		}
	}

	streak := 0
	if s.Streaks != nil {
		if st, err := s.Streaks.Touch(userID); err == nil {
			streak = st.CurrentStreak
		}
	}

	if s.Sessions != nil {
		s.Sessions.RecordCompleted(userID, model.ActivityQuiz, quiz.ID, quiz.Title, submission.TimeTakenSeconds)
	}

	percentage := 0
	if len(questions) > 0 {
		percentage = int(float64(score)/float64(len(questions))*100 + 0.5)
	}

	return &SubmitResult{
		AttemptID:   attempt.ID,
		Score:       score,
		Total:       len(questions),
		Wrong:       len(questions) - score,
		Percentage:  percentage,
		Correctness: correctness,
		TimeTaken:   submission.TimeTakenSeconds,
		Streak:      streak,
	}, nil
}

func (s *QuizService) Attempts(quizID, userID uint) ([]model.QuizAttempt, error) {
	if _, err := s.QuizRepo.FindByIDAndUser(quizID, userID); err != nil {
		return nil, util.ErrQuizNotFound
	}
	return s.AttemptRepo.FindByQuizAndUser(quizID, userID)
}

func gradeAnswer(q model.QuizQuestion, answer SubmittedAnswer) bool {
	switch q.Type {
	case model.MultipleChoice, model.TrueFalse:
		return answer.SelectedIndex != nil && *answer.SelectedIndex == q.CorrectIndex
	case model.Identification:
		return gradeIdentification(answer.Text, q.Answer)
	}
	return false
}

// gradeIdentification 简答题判分
// 精确匹配之外还接受"共享任一长度>2的单词"——刻意保留的宽松规则，
// 会把共用常见词的错误答案也判对
func gradeIdentification(given, expected string) bool {
	given = strings.ToLower(strings.TrimSpace(given))
	expected = strings.ToLower(strings.TrimSpace(expected))

	if given == "" || expected == "" {
		return false
	}
	if given == expected {
		return true
	}

	expectedWords := map[string]bool{}
	for _, w := range strings.Fields(expected) {
		if len(w) > 2 {
			expectedWords[w] = true
		}
	}

	for _, w := range strings.Fields(given) {
		if len(w) > 2 && expectedWords[w] {
			return true
		}
	}
	return false
}
