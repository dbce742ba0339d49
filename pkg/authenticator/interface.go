package authenticator

import (
	"context"
)

// OAuth2User is the profile an OAuth2 provider reports for a verified login.
type OAuth2User struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

type IOAuth2Service interface {
	Service() string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
}
