package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-builder-be/internal/config"
	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/events"
	pktNats "resume-builder-be/pkg/nats"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	HandleGoogleCallback(ctx context.Context, req *dto.OAuthCallbackRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
}

type oauthService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	authCfg        config.AuthConfig
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, authCfg config.AuthConfig) IOAuthService {
	return &oauthService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		authCfg:        authCfg,
	}
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *oauthService) HandleGoogleCallback(ctx context.Context, req *dto.OAuthCallbackRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	conf := &oauth2.Config{
		ClientID:     s.authCfg.GoogleClientID,
		ClientSecret: s.authCfg.GoogleClientSecret,
		RedirectURL:  req.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	token, err := conf.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	info, err := fetchGoogleUserInfo(token.AccessToken)
	if err != nil {
		return nil, err
	}
	if !info.VerifiedEmail {
		return nil, errors.New("google account email not verified")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.findOrCreateUser(ctx, uow, info)
	if err != nil {
		return nil, err
	}
	if user.Status == entity.UserStatusSuspended {
		return nil, errors.New("account suspended")
	}

	if err := uow.UserRepository().TouchLastLogin(ctx, user.Id); err != nil {
		fmt.Printf("[WARN] Failed to stamp last login for %s: %v\n", user.Id, err)
	}

	ttl := time.Duration(s.authCfg.AccessTokenTTLMin) * time.Minute
	accessToken, err := signAccessToken(user, s.authCfg.JWTSecret, ttl)
	if err != nil {
		return nil, err
	}

	rawRefresh := uuid.NewString()
	refreshEntity := &entity.UserRefreshToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		TokenHash: hashToken(rawRefresh),
		ExpiresAt: time.Now().Add(time.Duration(s.authCfg.RefreshTokenTTLHrs) * time.Hour),
		IpAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateRefreshToken(ctx, refreshEntity); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		ExpiresIn:    int64(ttl.Seconds()),
		User:         *userToAuthInfo(user),
	}, nil
}

// findOrCreateUser resolves by provider link first, then by email to
// attach Google to an existing password account, and finally creates
// a fresh verified account.
func (s *oauthService) findOrCreateUser(ctx context.Context, uow unitofwork.UnitOfWork, info *googleUserInfo) (*entity.User, error) {
	link, err := uow.UserRepository().FindUserProvider(ctx, "google", info.ID)
	if err != nil {
		return nil, err
	}
	if link != nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: link.UserId})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, errors.New("linked account no longer exists")
		}
		return user, nil
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: info.Email})
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	if user == nil {
		verifiedAt := now
		avatar := info.Picture
		user = &entity.User{
			Id:              uuid.New(),
			Email:           info.Email,
			FullName:        info.Name,
			Role:            entity.RoleUser,
			Status:          entity.UserStatusActive,
			Plan:            plancatalog.TierFree,
			EmailVerified:   true,
			EmailVerifiedAt: &verifiedAt,
			AvatarURL:       &avatar,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}

		if s.eventPublisher != nil {
			evt := events.New(events.TypeUserRegistered, map[string]interface{}{
				"user_id":   user.Id,
				"full_name": user.FullName,
			})
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
			}
		}
	}

	provider := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: info.ID,
		AvatarURL:      info.Picture,
		CreatedAt:      now,
	}
	if err := uow.UserRepository().SaveUserProvider(ctx, provider); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

func fetchGoogleUserInfo(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google userinfo response missing email")
	}
	return &info, nil
}
