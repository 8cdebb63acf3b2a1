package util

import (
	"strings"
	"testing"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1 MB"},
		{5 * 1024 * 1024, "5 MB"},
		{1024 * 1024 * 1024, "1 GB"},
	}

	for _, tt := range tests {
		got := FormatFileSize(tt.bytes)
		if got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestIsTextLike(t *testing.T) {
	if !IsTextLike("text/plain; charset=utf-8") {
		t.Error("text/plain should be text-like")
	}
	if IsTextLike("application/pdf") {
		t.Error("application/pdf should not be text-like")
	}
}

func TestValidateMimeType(t *testing.T) {
	plain := strings.NewReader("biology notes: the cell membrane controls transport")
	mimeType, err := ValidateMimeType(plain, AllowedDocumentTypes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Errorf("mime = %q, want text/plain prefix", mimeType)
	}

	pdf := strings.NewReader("%PDF-1.7 fake header")
	if _, err := ValidateMimeType(pdf, AllowedDocumentTypes); err != nil {
		t.Errorf("pdf header rejected: %v", err)
	}

	png := strings.NewReader("\x89PNG\r\n\x1a\nrest")
	if _, err := ValidateMimeType(png, AllowedDocumentTypes); err == nil {
		t.Error("png should be rejected")
	}
}

func TestSubjectFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"biology_chapter-3.pdf", "Biology Chapter 3"},
		{"calculus notes.txt", "Calculus Notes"},
		{"history.pdf", "History"},
		{"数学_第三章.pdf", "数学 第三章"},
		{"économie notes.txt", "Économie Notes"},
		{".pdf", "General"},
		{"", "General"},
	}

	for _, tt := range tests {
		got := SubjectFromFilename(tt.name)
		if got != tt.want {
			t.Errorf("SubjectFromFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
