package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider exchanges an authorization code for a normalized profile via
// Google's OAuth2 endpoints.
type GoogleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(cfg Config) *GoogleProvider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		}
	}
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

// AuthCodeURL builds the consent-screen URL for the given anti-forgery state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for tokens and fetches the userinfo
// document.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (Profile, Tokens, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return Profile{}, Tokens{}, fmt.Errorf("google code exchange failed: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return Profile{}, Tokens{}, fmt.Errorf("google userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, Tokens{}, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Profile{}, Tokens{}, fmt.Errorf("failed to decode google userinfo: %w", err)
	}

	profile := Profile{
		ProviderID: info.ID,
		Email:      info.Email,
		FirstName:  info.GivenName,
		LastName:   info.FamilyName,
		Avatar:     info.Picture,
	}

	tokens := Tokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		tokens.ExpiresAt = &expiry
	} else {
		expiry := time.Now().Add(time.Hour)
		tokens.ExpiresAt = &expiry
	}

	return profile, tokens, nil
}
