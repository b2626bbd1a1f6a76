package domain

import "time"

// OAuthProvider represents supported OAuth providers
type OAuthProvider string

const (
	OAuthProviderFacebook OAuthProvider = "facebook"
	OAuthProviderGitHub   OAuthProvider = "github"
)

// Valid reports whether the provider is supported
func (p OAuthProvider) Valid() bool {
	return p == OAuthProviderFacebook || p == OAuthProviderGitHub
}

// OAuthAccount links an external OAuth account to a local user
type OAuthAccount struct {
	ID           uint          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       uint          `gorm:"column:user_id;index" json:"user_id"`
	Provider     OAuthProvider `gorm:"column:provider;uniqueIndex:idx_provider_uid;size:20" json:"provider"`
	ProviderUID  string        `gorm:"column:provider_uid;uniqueIndex:idx_provider_uid;size:191" json:"provider_uid"`
	Email        string        `gorm:"column:email;size:255" json:"email"`
	Name         string        `gorm:"column:name;size:255" json:"name"`
	AccessToken  string        `gorm:"column:access_token;size:2048" json:"-"`
	RefreshToken string        `gorm:"column:refresh_token;size:2048" json:"-"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OAuthAccount) TableName() string {
	return "oauth_accounts"
}

// OAuthConfig holds configuration for an OAuth provider
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// OAuthUserInfo represents user info retrieved from an OAuth provider
type OAuthUserInfo struct {
	Provider    OAuthProvider `json:"provider"`
	ProviderUID string        `json:"provider_uid"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
}

// OAuthLoginResponse is returned after successful OAuth login
type OAuthLoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	IsNewUser    bool          `json:"is_new_user"`
	User         *UserResponse `json:"user"`
}
