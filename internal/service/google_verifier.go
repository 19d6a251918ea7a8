package service

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/lshigami/academe/config"
	"github.com/lshigami/academe/internal/apperr"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleClaims is the subset of the tokeninfo payload the auth flow uses.
type GoogleClaims struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	Audience   string `json:"aud"`
}

// GoogleVerifier validates a Google ID token and returns its claims.
type GoogleVerifier interface {
	Verify(idToken string) (*GoogleClaims, error)
}

type googleVerifier struct {
	client   *resty.Client
	clientID string
}

func NewGoogleVerifier(cfg *config.Config) GoogleVerifier {
	return &googleVerifier{
		client:   resty.New(),
		clientID: cfg.Auth.GoogleClientID,
	}
}

func (v *googleVerifier) Verify(idToken string) (*GoogleClaims, error) {
	var claims GoogleClaims
	resp, err := v.client.R().
		SetQueryParam("id_token", idToken).
		SetResult(&claims).
		Get(googleTokenInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google tokeninfo request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, apperr.Unauthorized("invalid Google token")
	}
	if v.clientID != "" && claims.Audience != v.clientID {
		return nil, apperr.Unauthorized("Google token audience mismatch")
	}
	if claims.Email == "" || claims.Subject == "" {
		return nil, apperr.Unauthorized("invalid Google token")
	}
	return &claims, nil
}
