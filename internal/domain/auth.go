package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/koquifi/backend/internal/entity"
	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/internal/repository"
	"github.com/koquifi/backend/pkg/authenticator"
	"github.com/koquifi/backend/pkg/crypto"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/ethutil"
	"github.com/koquifi/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	GoogleLogin(context.Context, *model.GoogleLoginRequest) (*model.GoogleLoginResponse, error)
	WalletConnect(context.Context, *model.WalletConnectRequest) (*model.WalletConnectResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
	Me(context.Context, *model.MeRequest) (*model.MeResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	transactionRepo  repository.TransactionRepository
	googleService    authenticator.IOAuth2Service
	rand             crypto.Rand
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	transactionRepo repository.TransactionRepository,
	googleService authenticator.IOAuth2Service,
	rand crypto.Rand,
) *authDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		transactionRepo:  transactionRepo,
		googleService:    googleService,
		rand:             rand,
	}
}

func (d *authDomain) GoogleLogin(
	ctx context.Context, req *model.GoogleLoginRequest,
) (*model.GoogleLoginResponse, error) {
	email, name, picture := req.Email, req.Name, req.Picture
	if req.IDToken != "" {
		if d.googleService == nil {
			return nil, errorx.New(errorx.Unavailable, "Google login is not configured")
		}

		serviceUser, err := d.googleService.VerifyIDToken(ctx, req.IDToken)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify id token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid id token")
		}

		email, name, picture = serviceUser.Email, serviceUser.Name, serviceUser.Picture
	}

	if email == "" {
		return nil, errorx.New(errorx.BadRequest, "Please provide an id token or a profile")
	}

	user, err := d.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
			return nil, errorx.Unknown
		}

		user, err = d.createGoogleUser(ctx, email, name, picture)
		if err != nil {
			return nil, err
		}
	} else {
		update := entity.User{Name: name, ProfilePicture: picture, LastLogin: time.Now()}
		if err := d.userRepo.UpdateByID(ctx, user.ID, &update); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update user login info: %v", err)
			return nil, errorx.Unknown
		}

		if name != "" {
			user.Name = name
		}

		if picture != "" {
			user.ProfilePicture = picture
		}

		user.LastLogin = update.LastLogin
	}

	accessToken, refreshToken, err := d.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.GoogleLoginResponse{
		User:         model.ConvertUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) WalletConnect(
	ctx context.Context, req *model.WalletConnectRequest,
) (*model.WalletConnectResponse, error) {
	var wallet ethutil.Wallet
	var generated bool
	if req.Address == "" {
		var err error
		wallet, err = ethutil.NewWallet()
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot generate wallet: %v", err)
			return nil, errorx.Unknown
		}

		generated = true
	} else {
		if !ethutil.IsValidAddress(req.Address) {
			return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
		}

		wallet = ethutil.Wallet{Address: req.Address}
	}

	user, err := d.userRepo.GetByWalletAddress(ctx, wallet.Address)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by wallet address: %v", err)
			return nil, errorx.Unknown
		}

		user, err = d.createWalletUser(ctx, wallet)
		if err != nil {
			return nil, err
		}
	} else {
		update := entity.User{LastLogin: time.Now()}
		if err := d.userRepo.UpdateByID(ctx, user.ID, &update); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update user login info: %v", err)
			return nil, errorx.Unknown
		}

		user.LastLogin = update.LastLogin
	}

	accessToken, refreshToken, err := d.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := &model.WalletConnectResponse{
		User:         model.ConvertUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	// The private key of a freshly generated wallet is returned exactly once.
	if generated {
		resp.PrivateKey = wallet.PrivateKey
	}

	return resp, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	refreshToken := model.RefreshToken{}
	err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &refreshToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Failed to verify refresh token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	hashedFamily := crypto.SHA256([]byte(refreshToken.Family))
	storageToken, err := d.refreshTokenRepo.Get(ctx, hashedFamily)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get refresh token family: %v", err)
		return nil, errorx.Unknown
	}

	if storageToken.Expiration.Before(time.Now()) {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	// A counter mismatch means an old token of this family was replayed.
	// Revoke the whole family. The delete and rotate queries are independent,
	// no transaction here.
	if refreshToken.Counter != storageToken.Counter {
		if err := d.refreshTokenRepo.Delete(ctx, hashedFamily); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete refresh token: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.StolenToken,
			"Your refresh token is revoked because it is detected as stolen")
	}

	if err := d.refreshTokenRepo.Rotate(ctx, hashedFamily); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate the refresh token: %v", err)
		return nil, errorx.Unknown
	}

	newRefreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			Family:  refreshToken.Family,
			Counter: refreshToken.Counter + 1,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, storageToken.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	newAccessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout only clears the session pointer. The response carries an empty
// user_id which the session middleware persists.
func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{}, nil
}

func (d *authDomain) Me(ctx context.Context, req *model.MeRequest) (*model.MeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MeResponse{User: model.ConvertUser(user)}, nil
}

func (d *authDomain) createGoogleUser(
	ctx context.Context, email, name, picture string,
) (*entity.User, error) {
	wallet, err := ethutil.NewWallet()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate wallet: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).Balance
	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          email,
		Name:           name,
		ProfilePicture: picture,
		WalletAddress:  wallet.Address,
		PrivateKeyRef:  wallet.PrivateKey,
		KofiBalance:    float64(d.rand.Range(cfg.MinKofi, cfg.MaxKofi)),
		UsdtBalance:    float64(d.rand.Range(cfg.MinUsdt, cfg.MaxUsdt)),
		AuthMethod:     entity.AuthMethodGoogle,
		LastLogin:      time.Now(),
		IsVerified:     true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	welcome := []entity.Transaction{
		{
			Base:        entity.Base{ID: uuid.NewString()},
			UserID:      user.ID,
			Type:        entity.TxDeposit,
			Amount:      user.KofiBalance,
			Currency:    entity.CurrencyKofi,
			Status:      entity.TxCompleted,
			Description: "Welcome bonus",
			TxHash:      randomTxHash(d.rand),
		},
		{
			Base:        entity.Base{ID: uuid.NewString()},
			UserID:      user.ID,
			Type:        entity.TxDeposit,
			Amount:      user.UsdtBalance,
			Currency:    entity.CurrencyBs,
			Status:      entity.TxCompleted,
			Description: "Welcome bonus",
			TxHash:      randomTxHash(d.rand),
		},
	}

	for i := range welcome {
		if err := d.transactionRepo.Create(ctx, &welcome[i]); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create welcome transaction: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return user, nil
}

func (d *authDomain) createWalletUser(
	ctx context.Context, wallet ethutil.Wallet,
) (*entity.User, error) {
	keyRef := wallet.PrivateKey
	if keyRef == "" {
		// External wallets keep their key, only a placeholder is stored.
		keyRef = entity.ExternalWalletKeyRef
	}

	cfg := xcontext.Configs(ctx).Balance
	shortAddr := strings.ToLower(strings.TrimPrefix(wallet.Address, "0x"))
	user := &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		Email:         fmt.Sprintf("%s@wallet.koquifi", shortAddr[:8]),
		Name:          fmt.Sprintf("User %s", shortAddr[:6]),
		WalletAddress: wallet.Address,
		PrivateKeyRef: keyRef,
		KofiBalance:   float64(d.rand.Range(cfg.MinKofi, cfg.MaxKofi)),
		UsdtBalance:   float64(d.rand.Range(cfg.MinUsdt, cfg.MaxUsdt)),
		AuthMethod:    entity.AuthMethodWallet,
		LastLogin:     time.Now(),
		IsVerified:    false,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	bonus := entity.Transaction{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      user.ID,
		Type:        entity.TxDeposit,
		Amount:      user.KofiBalance,
		Currency:    entity.CurrencyKofi,
		Status:      entity.TxCompleted,
		Description: "Wallet connection bonus",
		TxHash:      randomTxHash(d.rand),
	}

	if err := d.transactionRepo.Create(ctx, &bonus); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create wallet bonus transaction: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return user, nil
}

func (d *authDomain) generateTokens(ctx context.Context, user *entity.User) (string, string, error) {
	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	refreshTokenFamily, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token family: %v", err)
		return "", "", errorx.Unknown
	}

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			Family:  refreshTokenFamily,
			Counter: 0,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     user.ID,
		Family:     crypto.SHA256([]byte(refreshTokenFamily)),
		Counter:    0,
		Expiration: time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, refreshToken, nil
}
