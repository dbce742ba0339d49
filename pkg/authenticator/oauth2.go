package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/koquifi/backend/config"
	"golang.org/x/oauth2"
)

type OAuth2Service struct {
	*oidc.Provider
	oauth2.Config

	name    string
	idField string
}

func NewOAuth2Service(ctx context.Context, oauth2Cfg config.OAuth2Config) (*OAuth2Service, error) {
	provider, err := oidc.NewProvider(ctx, oauth2Cfg.Issuer)
	if err != nil {
		return nil, err
	}

	cfg := oauth2.Config{
		ClientID:     oauth2Cfg.ClientID,
		ClientSecret: oauth2Cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}

	return &OAuth2Service{
		name:     oauth2Cfg.Name,
		idField:  oauth2Cfg.IDField,
		Provider: provider,
		Config:   cfg,
	}, nil
}

func (a *OAuth2Service) Service() string {
	return a.name
}

func (a *OAuth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	oidcConfig := &oidc.Config{
		ClientID: a.ClientID,
	}

	idToken, err := a.Verifier(oidcConfig).Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	var profile map[string]any
	if err = idToken.Claims(&profile); err != nil {
		return OAuth2User{}, errors.New("invalid id token")
	}

	id, ok := profile[a.idField].(string)
	if !ok {
		return OAuth2User{}, fmt.Errorf("invalid id field %s", a.idField)
	}

	user := OAuth2User{ID: a.name + "_" + id}
	if email, ok := profile["email"].(string); ok {
		user.Email = email
	}

	if name, ok := profile["name"].(string); ok {
		user.Name = name
	}

	if picture, ok := profile["picture"].(string); ok {
		user.Picture = picture
	}

	return user, nil
}
