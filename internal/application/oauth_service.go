package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
)

// OAuthService drives the Google and Facebook login flows. It is a thin
// layer over UserService: a successful callback upserts the account by
// email and hands back to the normal session machinery.
type OAuthService struct {
	Users     *UserService
	providers map[string]*providerConfig
}

type providerConfig struct {
	oauth    *oauth2.Config
	userInfo string
}

// profile is the subset of the provider userinfo response we consume.
// Both Google and Facebook return these fields under the same names.
type profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string

	FacebookClientID     string
	FacebookClientSecret string

	// RedirectBase is the externally visible base URL, e.g.
	// "https://api.example.com". The callback path is appended per provider.
	RedirectBase string
}

func NewOAuthService(users *UserService, cfg OAuthConfig) *OAuthService {
	s := &OAuthService{Users: users, providers: make(map[string]*providerConfig)}
	if cfg.GoogleClientID != "" {
		s.providers["google"] = &providerConfig{
			oauth: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.RedirectBase + "/api/auth/google/callback",
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			userInfo: "https://www.googleapis.com/oauth2/v2/userinfo",
		}
	}
	if cfg.FacebookClientID != "" {
		s.providers["facebook"] = &providerConfig{
			oauth: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				RedirectURL:  cfg.RedirectBase + "/api/auth/facebook/callback",
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
			userInfo: "https://graph.facebook.com/me?fields=id,name,email",
		}
	}
	return s
}

func (s *OAuthService) provider(name string) (*providerConfig, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, apperr.Validation("oauth.login", fmt.Sprintf("unsupported provider %q", name))
	}
	return p, nil
}

// AuthURL returns the provider consent URL and the state value the caller
// must persist (cookie) and verify on callback.
func (s *OAuthService) AuthURL(providerName string) (string, string, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return "", "", err
	}
	state := uuid.NewString()
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), state, nil
}

// HandleCallback exchanges the authorization code, fetches the provider
// profile, and upserts the matching account.
func (s *OAuthService) HandleCallback(ctx context.Context, providerName, code string) (*entity.User, error) {
	const op = "oauth.callback"
	p, err := s.provider(providerName)
	if err != nil {
		return nil, err
	}
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.Unauthorized(op, "oauth code exchange failed")
	}
	prof, err := s.fetchProfile(ctx, p, tok)
	if err != nil {
		return nil, err
	}
	if prof.Email == "" {
		return nil, apperr.Validation(op, "provider did not supply an email address")
	}
	if prof.Name == "" {
		prof.Name = prof.Email
	}
	return s.Users.UpsertOAuthUser(ctx, prof.Email, prof.Name)
}

func (s *OAuthService) fetchProfile(ctx context.Context, p *providerConfig, tok *oauth2.Token) (*profile, error) {
	const op = "oauth.profile"
	client := p.oauth.Client(ctx, tok)
	resp, err := client.Get(p.userInfo)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperr.Persistence(op, fmt.Errorf("userinfo status %d: %s", resp.StatusCode, body))
	}
	var prof profile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return &prof, nil
}
