package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/crateloop/steamshelf/internal/boot"
	"github.com/crateloop/steamshelf/internal/model"
)

type Database interface {
	CreateUser(user *model.User) error
	UserByID(id model.UserID) (*model.User, error)
	UserByHandle(handle string) (*model.User, error)
	TouchUserLogin(user *model.User) error
}

type service struct {
	db     Database
	secret []byte
	ttl    time.Duration
}

func New(config *boot.Config, db Database) *service {
	return &service{
		db:     db,
		secret: []byte(config.Auth.TokenSecret),
		ttl:    config.Auth.TokenTTL,
	}
}

func (s *service) Register(params *model.CreateUserParams) (*model.User, error) {
	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("generating encoded password: %w", err)
	}

	user := &model.User{
		ID:        model.UserID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		Status:    model.UserStatusActive,
		Handle:    params.Handle,
		Email:     params.Email,
		Password:  base64.StdEncoding.EncodeToString(passwordBytes),
	}

	if err := s.db.CreateUser(user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *service) Login(params *model.LoginParams) (string, *model.User, error) {
	user, err := s.db.UserByHandle(params.Handle)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return "", nil, model.ErrorInvalidUsernameOrPassword
		}
		return "", nil, fmt.Errorf("fetching user: %w", err)
	}

	passwordBytes, err := base64.StdEncoding.DecodeString(user.Password)
	if err != nil {
		return "", nil, fmt.Errorf("decoding stored password: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(passwordBytes, []byte(params.Password)); err != nil {
		return "", nil, model.ErrorInvalidUsernameOrPassword
	}

	now := time.Now().UTC()
	user.LastLoggedInAt = &now
	if err := s.db.TouchUserLogin(user); err != nil {
		return "", nil, fmt.Errorf("updating login state: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": string(user.ID),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}

	return signed, user, nil
}

// Verify parses a bearer token and returns the user it identifies.
func (s *service) Verify(tokenString string) (model.UserID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("token missing subject")
	}

	if _, err := s.db.UserByID(model.UserID(sub)); err != nil {
		return "", fmt.Errorf("fetching token user: %w", err)
	}
	return model.UserID(sub), nil
}
