package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/movierama/movierama-backend/internal/common"
	"github.com/movierama/movierama-backend/internal/domain"
	"github.com/movierama/movierama-backend/internal/repository"
	pkgcache "github.com/movierama/movierama-backend/pkg/cache"
	"github.com/movierama/movierama-backend/pkg/jwt"
	pkglogger "github.com/movierama/movierama-backend/pkg/logger"
	"gorm.io/gorm"
)

// oauthStateTTL bounds how long a minted state nonce stays redeemable
const oauthStateTTL = 10 * time.Minute

// OAuthService handles the Facebook and GitHub OAuth2 social login flows
type OAuthService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
	cache      pkgcache.Service
	providers  map[domain.OAuthProvider]*domain.OAuthConfig
	httpClient *http.Client
}

// NewOAuthService creates a new OAuthService. cache backs the CSRF state
// nonces; with no cache configured states are minted but not checked.
func NewOAuthService(db *gorm.DB, userRepo repository.UserRepository, jwtManager *jwt.Manager, cache pkgcache.Service) *OAuthService {
	return &OAuthService{
		db:         db,
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cache:      cache,
		providers:  make(map[domain.OAuthProvider]*domain.OAuthConfig),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// RegisterProvider registers an OAuth provider configuration
func (s *OAuthService) RegisterProvider(provider domain.OAuthProvider, cfg *domain.OAuthConfig) {
	s.providers[provider] = cfg
}

// GetAuthURL returns the provider authorization URL carrying the given
// state, remembering the state so the callback can verify it
func (s *OAuthService) GetAuthURL(ctx context.Context, provider domain.OAuthProvider, state string) (string, error) {
	cfg, ok := s.providers[provider]
	if !ok {
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	s.saveState(ctx, state)

	switch provider {
	case domain.OAuthProviderFacebook:
		params := url.Values{
			"response_type": {"code"},
			"client_id":     {cfg.ClientID},
			"redirect_uri":  {cfg.RedirectURL},
			"scope":         {"email,public_profile"},
			"state":         {state},
		}
		return "https://www.facebook.com/v18.0/dialog/oauth?" + params.Encode(), nil

	case domain.OAuthProviderGitHub:
		params := url.Values{
			"client_id":    {cfg.ClientID},
			"redirect_uri": {cfg.RedirectURL},
			"scope":        {strings.Join(cfg.Scopes, " ")},
			"state":        {state},
		}
		if params.Get("scope") == "" {
			params.Set("scope", "read:user user:email")
		}
		return "https://github.com/login/oauth/authorize?" + params.Encode(), nil

	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}
}

// HandleCallback verifies the state nonce, exchanges the authorization
// code, fetches the provider profile, finds or creates the linked local
// account and issues tokens.
func (s *OAuthService) HandleCallback(ctx context.Context, provider domain.OAuthProvider, code, state string) (*domain.OAuthLoginResponse, error) {
	cfg, ok := s.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	if err := s.consumeState(ctx, state); err != nil {
		return nil, err
	}

	tokenResp, err := s.exchangeCode(ctx, provider, cfg, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	accessToken, ok := tokenResp["access_token"].(string)
	if !ok || accessToken == "" {
		return nil, fmt.Errorf("access_token not found in token response")
	}

	userInfo, err := s.getUserInfo(ctx, provider, accessToken)
	if err != nil {
		return nil, fmt.Errorf("get user info failed: %w", err)
	}

	user, isNewUser, err := s.findOrCreateAccount(ctx, userInfo, accessToken)
	if err != nil {
		return nil, err
	}

	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	return &domain.OAuthLoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		IsNewUser:    isNewUser,
		User:         user.ToResponse(),
	}, nil
}

// findOrCreateAccount links the provider identity to a local user,
// creating both on first login. Reports whether the user is new.
func (s *OAuthService) findOrCreateAccount(ctx context.Context, info *domain.OAuthUserInfo, accessToken string) (*domain.User, bool, error) {
	var account domain.OAuthAccount
	result := s.db.WithContext(ctx).
		Where("provider = ? AND provider_uid = ?", info.Provider, info.ProviderUID).
		First(&account)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		user := &domain.User{
			Username: oauthUsername(info),
			Email:    info.Email,
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, false, fmt.Errorf("create oauth user failed: %w", err)
		}

		account = domain.OAuthAccount{
			UserID:      user.ID,
			Provider:    info.Provider,
			ProviderUID: info.ProviderUID,
			Email:       info.Email,
			Name:        info.Name,
			AccessToken: accessToken,
		}
		if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
			return nil, false, fmt.Errorf("create oauth account failed: %w", err)
		}
		return user, true, nil
	}
	if result.Error != nil {
		return nil, false, result.Error
	}

	updates := map[string]interface{}{
		"access_token": accessToken,
		"name":         info.Name,
		"email":        info.Email,
	}
	if err := s.db.WithContext(ctx).Model(&account).Updates(updates).Error; err != nil {
		return nil, false, fmt.Errorf("update oauth account failed: %w", err)
	}

	user, err := s.userRepo.FindByID(account.UserID)
	if err != nil {
		return nil, false, err
	}
	return user, false, nil
}

func oauthStateKey(state string) string {
	return "oauth:state:" + state
}

// saveState remembers a minted state nonce for later redemption
func (s *OAuthService) saveState(ctx context.Context, state string) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.Set(ctx, oauthStateKey(state), true, oauthStateTTL); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("failed to store oauth state")
	}
}

// consumeState rejects a state the service never minted and burns it so a
// callback URL cannot be replayed. With no cache configured there is
// nothing to check against, so the callback proceeds on the handler's
// presence check alone.
func (s *OAuthService) consumeState(ctx context.Context, state string) error {
	if s.cache == nil || !s.cache.IsAvailable() {
		return nil
	}

	var seen bool
	if err := s.cache.Get(ctx, oauthStateKey(state), &seen); err != nil {
		return fmt.Errorf("%w: unknown oauth state", common.ErrInvalidInput)
	}
	_ = s.cache.Delete(ctx, oauthStateKey(state))
	return nil
}

// oauthUsername derives a unique local username from the provider identity
func oauthUsername(info *domain.OAuthUserInfo) string {
	return fmt.Sprintf("%s_%s", info.Provider, info.ProviderUID)
}

// exchangeCode exchanges an authorization code for an access token
func (s *OAuthService) exchangeCode(ctx context.Context, provider domain.OAuthProvider, cfg *domain.OAuthConfig, code string) (map[string]interface{}, error) {
	var tokenURL string
	params := url.Values{
		"code":          {code},
		"redirect_uri":  {cfg.RedirectURL},
		"client_id":     {cfg.ClientID},
		"client_secret": {cfg.ClientSecret},
	}

	switch provider {
	case domain.OAuthProviderFacebook:
		tokenURL = "https://graph.facebook.com/v18.0/oauth/access_token"
	case domain.OAuthProviderGitHub:
		tokenURL = "https://github.com/login/oauth/access_token"
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// GitHub returns form-encoded unless asked for JSON
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response body failed: %w", err)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse token response failed: %w", err)
	}

	if errMsg, ok := result["error"]; ok {
		return nil, fmt.Errorf("oauth error: %v", errMsg)
	}

	return result, nil
}

// getUserInfo fetches the user profile from the OAuth provider
func (s *OAuthService) getUserInfo(ctx context.Context, provider domain.OAuthProvider, accessToken string) (*domain.OAuthUserInfo, error) {
	var apiURL string

	switch provider {
	case domain.OAuthProviderFacebook:
		apiURL = "https://graph.facebook.com/me?fields=id,name,email"
	case domain.OAuthProviderGitHub:
		apiURL = "https://api.github.com/user"
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create user info request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if provider == domain.OAuthProviderGitHub {
		req.Header.Set("Accept", "application/vnd.github+json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read user info response body failed: %w", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	return parseUserInfo(provider, raw)
}

// parseUserInfo maps provider-specific payloads onto the common struct
func parseUserInfo(provider domain.OAuthProvider, raw map[string]interface{}) (*domain.OAuthUserInfo, error) {
	info := &domain.OAuthUserInfo{Provider: provider}

	switch provider {
	case domain.OAuthProviderFacebook:
		info.ProviderUID = fmt.Sprintf("%v", raw["id"])
		info.Email, _ = raw["email"].(string)
		info.Name, _ = raw["name"].(string)

	case domain.OAuthProviderGitHub:
		// GitHub ids are numeric in JSON
		if f, ok := raw["id"].(float64); ok {
			info.ProviderUID = fmt.Sprintf("%.0f", f)
		}
		info.Email, _ = raw["email"].(string)
		info.Name, _ = raw["name"].(string)
		if info.Name == "" {
			info.Name, _ = raw["login"].(string)
		}
	}

	if info.ProviderUID == "" || info.ProviderUID == "<nil>" {
		return nil, fmt.Errorf("could not extract provider UID")
	}

	return info, nil
}
