package services

import (
	"errors"

	"posbackend/configs"
	"posbackend/entity"
	"posbackend/repository"
	"posbackend/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("invalid email or password")

type AuthService struct {
	Users *repository.UserRepository
	Cfg   *configs.Config
}

func NewAuthService(users *repository.UserRepository, cfg *configs.Config) *AuthService {
	return &AuthService{Users: users, Cfg: cfg}
}

type LoginOut struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (s *AuthService) Login(email, password string) (*LoginOut, error) {
	u, err := s.Users.FindByEmail(email)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	token, err := utils.GenerateToken(u.ID, u.Role, s.Cfg.JWTSecret, s.Cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &LoginOut{Token: token, User: u}, nil
}
