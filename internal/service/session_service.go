package service

import (
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type SessionService struct {
	SessionRepo *repository.SessionRepository
	Streaks     *StreakService
}

func NewSessionService(sessionRepo *repository.SessionRepository, streaks *StreakService) *SessionService {
	return &SessionService{SessionRepo: sessionRepo, Streaks: streaks}
}

type StartSessionRequest struct {
	ActivityType model.ActivityType `json:"activityType" binding:"required"`
	ResourceID   uint               `json:"resourceId"`
	ResourceName string             `json:"resourceName"`
}

// Start 开启会话；同一用户已有未结束会话时先自动结束旧会话
// 状态机由服务端收敛，客户端忘记结束不会留下悬挂会话
func (s *SessionService) Start(userID uint, req StartSessionRequest) (*model.StudySession, error) {
	if open, err := s.SessionRepo.FindOpenByUser(userID); err == nil {
		if _, cerr := s.close(open); cerr != nil {
			return nil, cerr
		}
	}

	session := &model.StudySession{
		UserID:       userID,
		ActivityType: req.ActivityType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		StartedAt:    time.Now(),
	}

	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// End 结束指定会话并计算学习时长（分钟，至少1分钟）
func (s *SessionService) End(sessionID, userID uint) (*model.StudySession, error) {
	session, err := s.SessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.EndedAt != nil {
		return nil, util.ErrSessionAlreadyOver
	}
	return s.close(session)
}

func (s *SessionService) close(session *model.StudySession) (*model.StudySession, error) {
	now := time.Now()
	session.EndedAt = &now

	minutes := int(now.Sub(session.StartedAt).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	session.DurationMinutes = minutes

	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}

	if s.Streaks != nil {
		if _, err := s.Streaks.Touch(session.UserID); err != nil {
			logger.Log.Warn("streak update failed on session end",
				zap.Uint("userId", session.UserID), zap.Error(err))
		}
	}
	return session, nil
}

func (s *SessionService) List(userID uint) ([]model.StudySession, error) {
	return s.SessionRepo.FindByUser(userID)
}

// RecordCompleted 直接落一条已结束的会话，测验提交等服务端已知时长的场景使用
// 失败只记日志，不影响主流程
func (s *SessionService) RecordCompleted(userID uint, activity model.ActivityType, resourceID uint, resourceName string, seconds int) {
	now := time.Now()

	minutes := (seconds + 59) / 60
	if minutes < 1 {
		minutes = 1
	}

	session := &model.StudySession{
		UserID:          userID,
		ActivityType:    activity,
		ResourceID:      resourceID,
		ResourceName:    resourceName,
		StartedAt:       now.Add(-time.Duration(seconds) * time.Second),
		EndedAt:         &now,
		DurationMinutes: minutes,
	}

	if err := s.SessionRepo.Create(session); err != nil {
		logger.Log.Warn("completed session record failed",
			zap.Uint("userId", userID), zap.String("activity", string(activity)), zap.Error(err))
	}
}
