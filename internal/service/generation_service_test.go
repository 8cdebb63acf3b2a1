package service

import (
	"encoding/json"
	"strings"
	"studyhub_backend/internal/model"
	"testing"
	"unicode/utf8"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"fenced json", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"fenced no language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"chatter around array", "Sure! Here you go:\n[{\"a\":1}]\nHope this helps.", `[{"a":1}]`},
		{"chatter around object", "Result: {\"a\":1} done", `{"a":1}`},
		{"plain text", "  just text  ", "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.raw); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseMaterialFlashcards(t *testing.T) {
	raw := "```json\n[{\"front\":\"Q1\",\"back\":\"A1\"},{\"front\":\"Q2\",\"back\":\"A2\"}]\n```"

	content, err := parseMaterial(raw, model.Flashcards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cards []model.Flashcard
	if err := json.Unmarshal(content, &cards); err != nil {
		t.Fatalf("content not unmarshalable: %v", err)
	}
	if len(cards) != 2 || cards[0].Front != "Q1" {
		t.Errorf("unexpected cards: %+v", cards)
	}
}

func TestParseMaterialRejectsEmpty(t *testing.T) {
	if _, err := parseMaterial("[]", model.Flashcards); err == nil {
		t.Error("empty flashcard array should error")
	}
	if _, err := parseMaterial("   ", model.Summary); err == nil {
		t.Error("blank summary should error")
	}
	if _, err := parseMaterial("not json at all", model.Notes); err == nil {
		t.Error("malformed notes should error")
	}
}

func TestMockMaterialAlwaysRenders(t *testing.T) {
	file := &model.File{OriginalName: "biology.txt"}

	for _, mtype := range []model.MaterialType{model.Summary, model.Flashcards, model.Notes} {
		content := mockMaterial(file, mtype)
		if len(content) == 0 {
			t.Errorf("mock %s content is empty", mtype)
		}
		if !json.Valid(content) {
			t.Errorf("mock %s content is not valid JSON", mtype)
		}
	}
}

func TestSourceTextFallbackAndTruncation(t *testing.T) {
	noText := &model.File{OriginalName: "physics.pdf"}
	if got := sourceText(noText); got != "physics.pdf" {
		t.Errorf("empty extraction should fall back to filename, got %q", got)
	}

	long := &model.File{ExtractedText: strings.Repeat("a", maxPromptChars+500)}
	if got := sourceText(long); len(got) != maxPromptChars {
		t.Errorf("long text should truncate to %d chars, got %d", maxPromptChars, len(got))
	}
}

func TestSourceTextTruncatesOnRuneBoundary(t *testing.T) {
	// "数" 占3字节，maxPromptChars 不是3的倍数时截断点必然落在字符中间
	multi := &model.File{ExtractedText: strings.Repeat("数", maxPromptChars/3+200)}
	got := sourceText(multi)

	if len(got) > maxPromptChars {
		t.Errorf("truncated text is %d bytes, limit is %d", len(got), maxPromptChars)
	}
	if !utf8.ValidString(got) {
		t.Error("truncated text is not valid UTF-8")
	}
	if !strings.HasSuffix(got, "数") {
		t.Errorf("truncated text ends with partial rune: %q", got[len(got)-4:])
	}
}
