package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	authDto "sourcingsprints.com/bookclub/internal/modules/auth/dto"
	userRepo "sourcingsprints.com/bookclub/internal/modules/profile/repository"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type AuthService interface {
	// RequestCode issues a one-time login code for the email and returns it
	// for delivery. Only a bcrypt hash of the code is stored, with a TTL.
	RequestCode(ctx context.Context, email string) (string, error)
	// VerifyCode checks the code against the stored hash, burns it, and
	// returns a signed session token for the matching profile.
	VerifyCode(ctx context.Context, req authDto.VerifyCodeRequest) (*authDto.SessionResponse, error)
}

type authService struct {
	userRepo    userRepo.UserRepository
	redisClient *redis.Client
	jwtSecret   string
	sessionTTL  time.Duration
	codeTTL     time.Duration
}

func NewAuthService(userRepo userRepo.UserRepository, redisClient *redis.Client, jwtSecret string, sessionTTL, codeTTL time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		redisClient: redisClient,
		jwtSecret:   jwtSecret,
		sessionTTL:  sessionTTL,
		codeTTL:     codeTTL,
	}
}

func loginCodeKey(email string) string {
	return fmt.Sprintf("login_code:%s", email)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *authService) RequestCode(ctx context.Context, email string) (string, error) {
	if s.redisClient == nil {
		return "", apperror.ErrInternal
	}

	email = strings.ToLower(strings.TrimSpace(email))
	// Only provisioned profiles can log in; the error is the same either way
	// so the endpoint does not leak who is a member.
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.ErrUnauthorized
		}
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := s.redisClient.Set(ctx, loginCodeKey(email), string(hash), s.codeTTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (s *authService) VerifyCode(ctx context.Context, req authDto.VerifyCodeRequest) (*authDto.SessionResponse, error) {
	if s.redisClient == nil {
		return nil, apperror.ErrInternal
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	key := loginCodeKey(email)

	hash, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Code)) != nil {
		return nil, apperror.ErrUnauthorized
	}

	// Burn the code so it cannot be replayed.
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		log.Printf("Failed to delete login code for %s: %v", email, err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &authDto.SessionResponse{Token: token}, nil
}
