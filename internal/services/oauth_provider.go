package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/pkg/apperror"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

// OAuthProvider resolves a third-party credential to a verified identity profile
type OAuthProvider interface {
	// VerifyToken resolves a provider-issued token (Google ID token, Facebook
	// access token) to the holder's profile
	VerifyToken(ctx context.Context, token string) (*ProviderProfile, error)

	// ExchangeCode trades an authorization code for a token and resolves the profile
	ExchangeCode(ctx context.Context, code string) (*ProviderProfile, error)

	// ProviderName returns the name of the provider ("google" or "facebook")
	ProviderName() string
}

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
const facebookProfileURL = "https://graph.facebook.com/me"

type GoogleProvider struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

func NewGoogleProvider(cfg *config.Config) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GoogleProvider) ProviderName() string {
	return "google"
}

// VerifyToken validates a Google ID token against the tokeninfo endpoint and
// checks it was issued for this app.
func (p *GoogleProvider) VerifyToken(ctx context.Context, idToken string) (*ProviderProfile, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", googleTokenInfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach google tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Unauthorized("invalid google token")
	}

	var info struct {
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if info.Aud != p.oauth.ClientID {
		return nil, apperror.Unauthorized("google token issued for another application")
	}

	return &ProviderProfile{
		Email:         info.Email,
		Name:          info.Name,
		Avatar:        info.Picture,
		EmailVerified: info.EmailVerified == "true",
	}, nil
}

func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*ProviderProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Unauthorized("google code exchange failed")
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, apperror.Unauthorized("google token response carries no identity")
	}
	return p.VerifyToken(ctx, idToken)
}

type FacebookProvider struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

func NewFacebookProvider(cfg *config.Config) *FacebookProvider {
	return &FacebookProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.FacebookAppID,
			ClientSecret: cfg.FacebookAppSecret,
			RedirectURL:  cfg.FacebookRedirectURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *FacebookProvider) ProviderName() string {
	return "facebook"
}

// VerifyToken resolves a Facebook access token to a profile via the Graph API
func (p *FacebookProvider) VerifyToken(ctx context.Context, accessToken string) (*ProviderProfile, error) {
	query := url.Values{}
	query.Set("fields", "id,name,email,picture.width(200)")
	query.Set("access_token", accessToken)
	endpoint := fmt.Sprintf("%s?%s", facebookProfileURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach facebook graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Unauthorized("invalid facebook token")
	}

	var info struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode graph response: %w", err)
	}

	// Facebook only exposes emails it has verified
	return &ProviderProfile{
		Email:         info.Email,
		Name:          info.Name,
		Avatar:        info.Picture.Data.URL,
		EmailVerified: info.Email != "",
	}, nil
}

func (p *FacebookProvider) ExchangeCode(ctx context.Context, code string) (*ProviderProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Unauthorized("facebook code exchange failed")
	}
	return p.VerifyToken(ctx, token.AccessToken)
}
