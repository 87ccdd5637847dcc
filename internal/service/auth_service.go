package service

import (
	"errors"
	"guidly_backend/internal/config"
	"guidly_backend/internal/model"
	"guidly_backend/internal/repository"
	"guidly_backend/internal/util"
	"guidly_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	users *repository.UserRepository
	cfg   *config.JWTConfig
}

func NewAuthService(users *repository.UserRepository, cfg *config.JWTConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// AuthResult pairs the authenticated account with a fresh token.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
		Role:     model.Teacher,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.cfg.Secret, s.cfg.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to record last login", zap.Uint("userID", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.cfg.Secret, s.cfg.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(userID uint) (*model.User, error) {
	return s.users.FindByID(userID)
}
