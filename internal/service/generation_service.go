package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"studyhub_backend/pkg/monitoring"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	generationSystemPrompt = "You are a study assistant. You turn course documents into " +
		"study materials. Always answer with exactly the format requested, nothing else."

	// 抽取文本过长时截断，避免超出模型上下文
	maxPromptChars = 24000

	quizCacheTTL = 24 * time.Hour
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	bareArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
	bareObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

type GenerationService struct {
	ai  *AIService
	rdb *redis.Client
}

func NewGenerationService(ai *AIService, rdb *redis.Client) *GenerationService {
	return &GenerationService{ai: ai, rdb: rdb}
}

// sourceText 没有抽取到正文时退回标题，生成结果只能靠文件名联想
func sourceText(file *model.File) string {
	text := strings.TrimSpace(file.ExtractedText)
	if text == "" {
		text = file.OriginalName
	}
	if len(text) > maxPromptChars {
		cut := maxPromptChars
		// 回退到rune边界，避免截断多字节字符产生非法UTF-8
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

// extractJSON 模型经常把JSON包在围栏或解说文字里，先按围栏取，再退化为首个数组/对象
func extractJSON(s string) string {
	if m := fencedJSONRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := bareArrayRe.FindString(s); m != "" {
		return m
	}
	if m := bareObjectRe.FindString(s); m != "" {
		return m
	}
	return strings.TrimSpace(s)
}

// GenerateMaterial 生成摘要/抽认卡/笔记
// 调用或解析失败时回退到固定的占位内容，资料路径永远有东西可展示
func (s *GenerationService) GenerateMaterial(ctx context.Context, file *model.File, mtype model.MaterialType) (datatypes.JSON, error) {
	prompt := materialPrompt(file, mtype)

	raw, err := s.ai.Chat(ctx, generationSystemPrompt, prompt)
	if err == nil {
		if content, perr := parseMaterial(raw, mtype); perr == nil {
			monitoring.GenerationCounter.WithLabelValues(string(mtype), "ok").Inc()
			return content, nil
		} else {
			err = perr
		}
	}

	logger.Log.Warn("material generation fell back to mock content",
		zap.String("type", string(mtype)), zap.Uint("fileId", file.ID), zap.Error(err))
	monitoring.GenerationCounter.WithLabelValues(string(mtype), "fallback").Inc()

	return mockMaterial(file, mtype), nil
}

// GenerateQuizQuestions 生成测验题目，解析失败原样报错（测验路径不做mock回退）
// 同一 (文件, 难度, 题数) 的结果缓存在redis里
func (s *GenerationService) GenerateQuizQuestions(ctx context.Context, file *model.File, difficulty model.QuizDifficulty, count int) ([]model.QuizQuestion, error) {
	cacheKey := fmt.Sprintf("quizgen:%d:%s:%d", file.ID, difficulty, count)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var questions []model.QuizQuestion
			if json.Unmarshal(cached, &questions) == nil && len(questions) > 0 {
				return questions, nil
			}
		}
	}

	prompt := quizPrompt(file, difficulty, count)

	raw, err := s.ai.Chat(ctx, generationSystemPrompt, prompt)
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("quiz", "error").Inc()
		return nil, err
	}

	var questions []model.QuizQuestion
	if err := json.Unmarshal([]byte(extractJSON(raw)), &questions); err != nil {
		monitoring.GenerationCounter.WithLabelValues("quiz", "error").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}
	if len(questions) == 0 {
		monitoring.GenerationCounter.WithLabelValues("quiz", "error").Inc()
		return nil, util.ErrGenerationFailed
	}

	for i := range questions {
		questions[i].ID = uint(i + 1)
		if questions[i].Type == "" {
			questions[i].Type = model.MultipleChoice
		}
	}

	monitoring.GenerationCounter.WithLabelValues("quiz", "ok").Inc()

	if s.rdb != nil {
		if data, err := json.Marshal(questions); err == nil {
			s.rdb.Set(ctx, cacheKey, data, quizCacheTTL)
		}
	}

	return questions, nil
}

func materialPrompt(file *model.File, mtype model.MaterialType) string {
	text := sourceText(file)

	switch mtype {
	case model.Flashcards:
		return fmt.Sprintf("Create 10 flashcards from the document below. Respond with a JSON array "+
			"of objects with fields \"front\" and \"back\".\n\nDocument:\n%s", text)
	case model.Notes:
		return fmt.Sprintf("Create structured study notes from the document below. Respond with a JSON "+
			"array of objects with fields \"heading\" and \"points\" (array of strings).\n\nDocument:\n%s", text)
	default:
		return fmt.Sprintf("Write a concise study summary (3-5 paragraphs) of the document below. "+
			"Respond with plain text only.\n\nDocument:\n%s", text)
	}
}

func quizPrompt(file *model.File, difficulty model.QuizDifficulty, count int) string {
	return fmt.Sprintf("Create a %s difficulty quiz with %d questions from the document below. "+
		"Respond with a JSON array of objects with fields \"type\" (one of \"multiple_choice\", "+
		"\"true_false\", \"identification\"), \"question\", \"options\" (4 strings for multiple_choice, "+
		"[\"True\",\"False\"] for true_false, omit for identification), \"correctIndex\" (for choice "+
		"types), \"answer\" (for identification) and \"explanation\".\n\nDocument:\n%s",
		difficulty, count, sourceText(file))
}

func parseMaterial(raw string, mtype model.MaterialType) (datatypes.JSON, error) {
	switch mtype {
	case model.Flashcards:
		var cards []model.Flashcard
		if err := json.Unmarshal([]byte(extractJSON(raw)), &cards); err != nil {
			return nil, err
		}
		if len(cards) == 0 {
			return nil, util.ErrGenerationFailed
		}
		return json.Marshal(cards)
	case model.Notes:
		var sections []model.NoteSection
		if err := json.Unmarshal([]byte(extractJSON(raw)), &sections); err != nil {
			return nil, err
		}
		if len(sections) == 0 {
			return nil, util.ErrGenerationFailed
		}
		return json.Marshal(sections)
	default:
		text := strings.TrimSpace(raw)
		if text == "" {
			return nil, util.ErrGenerationFailed
		}
		return json.Marshal(map[string]string{"text": text})
	}
}

// mockMaterial 兜底占位内容，仅保证界面有东西可渲染，不承诺准确性
func mockMaterial(file *model.File, mtype model.MaterialType) datatypes.JSON {
	switch mtype {
	case model.Flashcards:
		cards := []model.Flashcard{
			{Front: "What document are these cards based on?", Back: file.OriginalName},
			{Front: "Review tip", Back: "Re-read the key sections and regenerate the flashcards."},
		}
		data, _ := json.Marshal(cards)
		return data
	case model.Notes:
		sections := []model.NoteSection{
			{Heading: "About " + file.OriginalName, Points: []string{
				"Automatic note generation was unavailable for this document.",
				"Try regenerating after re-uploading the document as plain text.",
			}},
		}
		data, _ := json.Marshal(sections)
		return data
	default:
		data, _ := json.Marshal(map[string]string{
			"text": "A summary could not be generated for \"" + file.OriginalName +
				"\". Please try again later.",
		})
		return data
	}
}
