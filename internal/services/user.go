package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saasify-labs/commerce-api/internal/config"
	"github.com/saasify-labs/commerce-api/internal/errors"
	"github.com/saasify-labs/commerce-api/internal/models"
	repository "github.com/saasify-labs/commerce-api/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Signin(ctx context.Context, req *models.SigninRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type userService struct {
	repo      repository.UserRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, rateLimit repository.RateLimitRepository, sec *config.Security) UserService {
	return &userService{
		repo:      repo,
		rateLimit: rateLimit,
		jwtKey:    []byte(sec.JWTKey),
		tokenTTL:  sec.TokenTTL,
	}
}

func (s *userService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// backstop for two signups racing past the existence check
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.DuplicateEntryError("Email already registered")
		}
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.AuthResponse{
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Token:  token,
	}, nil
}

func (s *userService) Signin(ctx context.Context, req *models.SigninRequest) (*models.AuthResponse, error) {

	allowed, _, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errors.UnauthorizedError("Invalid credentials")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.AuthResponse{
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Token:  token,
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

// Signed, expiring session token.
func (s *userService) signToken(user *models.User) (string, error) {

	claims := &models.Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwtKey)
}
