package service

import (
	"context"
	"errors"

	"fleetdesk-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type authService struct {
	operatorName string
	passwordHash string
	tokens       security.TokenManager
}

func NewAuthService(operatorName, passwordHash string, tokens security.TokenManager) AuthService {
	return &authService{
		operatorName: operatorName,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

func (s *authService) Login(ctx context.Context, operator, password string) (string, error) {
	if operator != s.operatorName {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.GenerateAccessToken(operator)
}
