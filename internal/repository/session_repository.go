package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByIDAndUser(sessionID, userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindOpenByUser 返回用户当前未结束的会话，没有则返回 gorm.ErrRecordNotFound
func (r *SessionRepository) FindOpenByUser(userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("user_id = ? AND ended_at IS NULL", userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindByUser(userID uint) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Where("user_id = ?", userID).Order("started_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) Update(session *model.StudySession) error {
	return r.DB.Save(session).Error
}
