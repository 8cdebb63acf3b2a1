package service

import (
	"strings"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type UserService struct {
	UserRepo       *repository.UserRepository
	PreferenceRepo *repository.PreferenceRepository
}

func NewUserService(userRepo *repository.UserRepository, preferenceRepo *repository.PreferenceRepository) *UserService {
	return &UserService{UserRepo: userRepo, PreferenceRepo: preferenceRepo}
}

func (s *UserService) Profile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if strings.TrimSpace(req.Name) != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Preferences(userID uint) (*model.UserPreference, error) {
	return s.PreferenceRepo.GetOrCreate(userID)
}

type UpdatePreferenceRequest struct {
	Theme            string `json:"theme"`
	DailyGoalMinutes int    `json:"dailyGoalMinutes"`
}

func (s *UserService) UpdatePreferences(userID uint, req UpdatePreferenceRequest) (*model.UserPreference, error) {
	pref, err := s.PreferenceRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	if req.Theme != "" {
		pref.Theme = req.Theme
	}
	if req.DailyGoalMinutes > 0 {
		pref.DailyGoalMinutes = req.DailyGoalMinutes
	}

	if err := s.PreferenceRepo.Save(pref); err != nil {
		return nil, err
	}
	return pref, nil
}
