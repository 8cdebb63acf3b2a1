package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrFileNotFound       = errors.New("file not found")
	ErrFileTooLarge       = errors.New("file exceeds the 5 MB upload limit")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrMaterialNotFound   = errors.New("study material not found")
	ErrSessionNotFound    = errors.New("study session not found")
	ErrNoExtractedText    = errors.New("document has no extractable text")
	ErrQuizNeedsQuestion  = errors.New("quiz must keep at least one question")
	ErrQuestionNeedsTwo   = errors.New("choice questions need at least 2 options")
	ErrBadCorrectIndex    = errors.New("correct option index out of range")
	ErrSignInRequired     = errors.New("please sign in to save your quiz results")
	ErrGenerationFailed   = errors.New("AI generation returned malformed content")
	ErrSessionAlreadyOver = errors.New("study session already ended")
)
