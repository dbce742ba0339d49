package model

// Access Token and Refresh Token
type AccessToken struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type RefreshToken struct {
	Family  string
	Counter uint64
}

// Google Login
type GoogleLoginRequest struct {
	// IDToken is verified against the OIDC issuer when given. Without it the
	// profile fields below are trusted as-is.
	IDToken string `json:"id_token"`

	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type GoogleLoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r GoogleLoginResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}

// Wallet Connect
type WalletConnectRequest struct {
	// Address is optional. When empty a fresh wallet is generated for the
	// user and its private key is returned once.
	Address string `json:"address"`
}

type WalletConnectResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	PrivateKey   string `json:"private_key,omitempty"`
}

func (r WalletConnectResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}

// Refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Logout
type LogoutRequest struct{}

type LogoutResponse struct{}

func (r LogoutResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": ""}
}

// Me
type MeRequest struct{}

type MeResponse struct {
	User User `json:"user"`
}
