package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/gateway"
	"clinic-crm-service/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrSessionNotFound    = errors.New("session not found")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID, accessTokenID string) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

// authUsecase authenticates users against the gateway's directory, then
// wraps the verified identity in locally-signed tokens. Redis holds one key
// per live token so a logout revokes immediately instead of waiting for
// expiry.
type authUsecase struct {
	log         *logrus.Logger
	crm         CRMGateway
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthUsecase(log *logrus.Logger, crm CRMGateway, jwtService *jwt.JWTService, redisClient *redis.Client) AuthUsecase {
	return &authUsecase{
		log:         log,
		crm:         crm,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.crm.VerifyCredentials(ctx, &gateway.VerifyCredentialsRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to verify credentials: %+v", err)
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, user.UserID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	// Cache the gateway identity so /me does not round-trip per request.
	session, err := json.Marshal(dto.UserResponse{
		ID:       user.UserID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}
	sessionKey := fmt.Sprintf("session_user:%s", user.UserID)
	if err := u.redisClient.Set(ctx, sessionKey, session, u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store session in Redis: %+v", err)
		return nil, err
	}

	return tokens, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token dies with this exchange.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

func (u *authUsecase) Logout(ctx context.Context, userID, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID, accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	// Any outstanding refresh tokens for the user die with the session.
	refreshPattern := fmt.Sprintf("refresh_token:%s:*", userID)
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to get refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	sessionKey := fmt.Sprintf("session_user:%s", userID)
	session, err := u.redisClient.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		u.log.Warnf("Failed to load session from Redis: %+v", err)
		return nil, err
	}

	var user dto.UserResponse
	if err := json.Unmarshal([]byte(session), &user); err != nil {
		u.log.Warnf("Failed to decode session: %+v", err)
		return nil, ErrSessionNotFound
	}

	return &user, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID, email, role string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID, accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID, refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
