package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/votehub/votehub-api/internal/dto"
	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/oauth"
	"github.com/votehub/votehub-api/internal/services"
)

const oauthStateCookie = "oauth_state"

// OAuthHandler drives the provider sign-in flows and hands verified profiles
// to the reconciler.
type OAuthHandler struct {
	oauthService *services.OAuthService
	authService  *services.AuthService
	google       *oauth.GoogleProvider
	apple        *oauth.AppleProvider
}

func NewOAuthHandler(oauthService *services.OAuthService, authService *services.AuthService, google *oauth.GoogleProvider, apple *oauth.AppleProvider) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		authService:  authService,
		google:       google,
		apple:        apple,
	}
}

// GoogleRedirect sends the client to Google's consent screen with a random
// anti-forgery state bound to a cookie.
func (h *OAuthHandler) GoogleRedirect(c *fiber.Ctx) error {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return internalError(c)
	}
	state := base64.RawURLEncoding.EncodeToString(raw)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		MaxAge:   300,
	})
	return c.Redirect(h.google.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback exchanges the authorization code and opens a session.
func (h *OAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if c.Query("state") == "" || c.Query("state") != c.Cookies(oauthStateCookie) {
		return badRequest(c, "Invalid OAuth state")
	}
	code := c.Query("code")
	if code == "" {
		return badRequest(c, "Missing authorization code")
	}

	profile, tokens, err := h.google.Exchange(c.UserContext(), code)
	if err != nil {
		slog.Error("google exchange failed", "error", err)
		return unauthorized(c, "Google sign in failed")
	}

	return h.completeSignIn(c, models.ProviderGoogle, profile, tokens)
}

// AppleSignIn verifies the identity token posted by Apple's native flow.
func (h *OAuthHandler) AppleSignIn(c *fiber.Ctx) error {
	var req dto.AppleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.IdentityToken == "" {
		return badRequest(c, "Identity token is required")
	}

	profile, tokens, err := h.apple.VerifyIdentityToken(req.IdentityToken)
	if err != nil {
		slog.Error("apple token verification failed", "error", err)
		return unauthorized(c, "Apple sign in failed")
	}

	// Apple sends the name only on first authorization.
	if req.FullName != "" && profile.FirstName == "" {
		profile.FirstName, profile.LastName = oauth.SplitFullName(req.FullName)
	}

	return h.completeSignIn(c, models.ProviderApple, profile, tokens)
}

func (h *OAuthHandler) completeSignIn(c *fiber.Ctx, provider string, profile oauth.Profile, tokens oauth.Tokens) error {
	user, err := h.oauthService.Reconcile(c.UserContext(), provider, profile, tokens)
	if err != nil {
		if errors.Is(err, services.ErrOrphanedOAuthLink) {
			slog.Error("orphaned oauth link", "provider", provider, "provider_id", profile.ProviderID)
		}
		return internalError(c)
	}

	result, err := h.authService.EstablishSession(c.UserContext(), user)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(result)
}
