package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saasify-labs/commerce-api/internal/config"
	appErrors "github.com/saasify-labs/commerce-api/internal/errors"
	"github.com/saasify-labs/commerce-api/internal/models"
	repoMocks "github.com/saasify-labs/commerce-api/internal/repositories/mocks"
	service "github.com/saasify-labs/commerce-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const testJWTKey = "test-signing-key"

func setupUserService() (*repoMocks.UserRepository, *repoMocks.RateLimitRepository, service.UserService) {
	userRepo := new(repoMocks.UserRepository)
	rateLimit := new(repoMocks.RateLimitRepository)
	svc := service.NewUserService(userRepo, rateLimit, &config.Security{
		JWTKey:   testJWTKey,
		TokenTTL: 24 * time.Hour,
	})

	return userRepo, rateLimit, svc
}

func parseTestToken(t *testing.T, raw string) *models.Claims {
	t.Helper()

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTKey), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	return claims
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	req := &models.SignupRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userRepo, _, svc := setupUserService()
		newID := primitive.NewObjectID()

		userRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(nil, mongo.ErrNoDocuments).Once()
		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*models.User)
				user.ID = newID

				assert.Equal(t, req.Name, user.Name)
				assert.Equal(t, models.RoleUser, user.Role)
				assert.True(t, user.IsActive)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
			}).
			Return(nil).Once()

		// Act
		resp, err := svc.Signup(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, newID.Hex(), resp.UserID)
		assert.Equal(t, req.Email, resp.Email)

		claims := parseTestToken(t, resp.Token)
		assert.Equal(t, newID.Hex(), claims.UserID)
		assert.Equal(t, req.Email, claims.Email)
		assert.True(t, claims.ExpiresAt.After(time.Now()))
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - Email Already Registered", func(t *testing.T) {
		// Arrange
		userRepo, _, svc := setupUserService()
		userRepo.On("GetUserByEmail", mock.Anything, req.Email).
			Return(&models.User{Email: req.Email}, nil).Once()

		// Act
		resp, err := svc.Signup(ctx, req)

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate Key Race", func(t *testing.T) {
		// Arrange
		userRepo, _, svc := setupUserService()
		dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}

		userRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(nil, mongo.ErrNoDocuments).Once()
		userRepo.On("CreateUser", mock.Anything, mock.Anything).Return(dupErr).Once()

		// Act
		resp, err := svc.Signup(ctx, req)

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
	})
}

func TestSignin(t *testing.T) {
	ctx := context.Background()

	password := "s3cret-pass"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	storedUser := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
	}

	req := &models.SigninRequest{Email: storedUser.Email, Password: password}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userRepo, rateLimit, svc := setupUserService()
		rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(true, 1, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(storedUser, nil).Once()

		// Act
		resp, err := svc.Signin(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, storedUser.ID.Hex(), resp.UserID)

		claims := parseTestToken(t, resp.Token)
		assert.Equal(t, storedUser.ID.Hex(), claims.UserID)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		userRepo, rateLimit, svc := setupUserService()
		rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(true, 1, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(storedUser, nil).Once()

		// Act
		resp, err := svc.Signin(ctx, &models.SigninRequest{Email: req.Email, Password: "wrong"})

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		userRepo, rateLimit, svc := setupUserService()
		rateLimit.On("CheckLoginRateLimit", mock.Anything, "nobody@example.com").Return(true, 1, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, mongo.ErrNoDocuments).Once()

		// Act
		resp, err := svc.Signin(ctx, &models.SigninRequest{Email: "nobody@example.com", Password: password})

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userRepo, rateLimit, svc := setupUserService()
		rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(false, 5, 42, nil).Once()

		// Act
		resp, err := svc.Signin(ctx, req)

		// Assert
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		userRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}
