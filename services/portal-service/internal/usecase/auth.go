package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/config"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/repository"
	authtypes "github.com/vasapolrittideah/careers-portal/services/portal-service/pkg/types"
	"github.com/vasapolrittideah/careers-portal/shared/auth"
	"github.com/vasapolrittideah/careers-portal/shared/provider"
)

// AuthUsecase defines the sign-up, sign-in and session operations.
type AuthUsecase interface {
	SignUpWithEmail(ctx context.Context, params SignUpParams) (*AuthResult, error)
	SignInWithEmail(ctx context.Context, params SignInParams) (*AuthResult, error)
	SignInWithGoogle(ctx context.Context, params GoogleSignInParams) (*AuthResult, error)
	SignInWithFacebook(ctx context.Context, params FacebookSignInParams) (*AuthResult, error)
	SignOut(ctx context.Context, claims *authtypes.JWTClaims) error
	Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*AuthResult, error)
	Authenticate(ctx context.Context, accessToken string) (*authtypes.JWTClaims, error)
	GetProfile(ctx context.Context, uid string) (*model.UserProfile, error)
}

// ClientInfo describes the device a session is opened from.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Client    ClientInfo
}

type SignInParams struct {
	Email    string
	Password string
	Client   ClientInfo
}

// GoogleSignInParams carries what the Google popup produced. PopupError is
// set instead of the tokens when the popup was closed or denied.
type GoogleSignInParams struct {
	IDToken     string
	AccessToken string
	PopupError  string
	Client      ClientInfo
}

type FacebookSignInParams struct {
	AccessToken string
	PopupError  string
	Client      ClientInfo
}

// AuthResult is returned by every successful sign-in.
type AuthResult struct {
	Principal    Principal
	Tokens       authtypes.Tokens
	Role         model.Role
	RedirectPath string
}

// GoogleVerifier validates a Google popup credential.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken, accessToken string) (*provider.FederatedUser, error)
}

// FacebookVerifier validates a Facebook popup access token.
type FacebookVerifier interface {
	Verify(ctx context.Context, accessToken string) (*provider.FederatedUser, error)
}

type authUsecase struct {
	identityProvider IdentityProvider
	sessionRepo      repository.SessionRepository
	profileRepo      repository.ProfileRepository
	roleRepo         repository.RoleRepository
	google           GoogleVerifier
	facebook         FacebookVerifier
	jwtAuth          auth.JWTAuthenticator
	tokenCfg         config.TokenConfig
	logger           *zerolog.Logger
	now              func() time.Time
}

func NewAuthUsecase(
	identityProvider IdentityProvider,
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	roleRepo repository.RoleRepository,
	google GoogleVerifier,
	facebook FacebookVerifier,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		identityProvider: identityProvider,
		sessionRepo:      sessionRepo,
		profileRepo:      profileRepo,
		roleRepo:         roleRepo,
		google:           google,
		facebook:         facebook,
		jwtAuth:          jwtAuth,
		tokenCfg:         tokenCfg,
		logger:           logger,
		now:              time.Now,
	}
}

func (u *authUsecase) SignUpWithEmail(ctx context.Context, params SignUpParams) (*AuthResult, error) {
	displayName := strings.TrimSpace(params.FirstName + " " + params.LastName)

	principal, err := u.identityProvider.CreateUserWithPassword(ctx, params.Email, params.Password, displayName)
	if err != nil {
		return nil, err
	}

	now := u.now()
	write := model.NewProfileWrite(
		principal.UID,
		displayName,
		principal.Email,
		principal.PhotoURL,
		params.FirstName,
		params.LastName,
		now,
	)
	if err := u.profileRepo.UpsertProfile(ctx, principal.UID, write); err != nil {
		// Roll back the account created above.
		if delErr := u.identityProvider.DeleteUser(context.WithoutCancel(ctx), principal.UID); delErr != nil {
			u.logger.Error().Err(delErr).Str("uid", principal.UID).Msg("failed to roll back sign-up")
		}
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return u.completeSignIn(ctx, principal, params.Client)
}

func (u *authUsecase) SignInWithEmail(ctx context.Context, params SignInParams) (*AuthResult, error) {
	principal, err := u.identityProvider.SignInWithPassword(ctx, params.Email, params.Password)
	if err != nil {
		return nil, err
	}

	write, err := u.signInProfileWrite(ctx, principal)
	if err != nil {
		return nil, err
	}
	if err := u.profileRepo.UpsertProfile(ctx, principal.UID, write); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return u.completeSignIn(ctx, principal, params.Client)
}

// signInProfileWrite only touches lastLogin, unless the account has no profile
// yet, in which case the full profile is written from the account.
func (u *authUsecase) signInProfileWrite(ctx context.Context, principal *Principal) (model.ProfileWrite, error) {
	_, err := u.profileRepo.GetProfile(ctx, principal.UID)
	switch {
	case err == nil:
		return model.LastLoginWrite(u.now()), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		u.logger.Warn().Str("uid", principal.UID).Msg("account has no profile, writing it on sign-in")
		firstName, lastName := SplitDisplayName(principal.DisplayName)
		return model.NewProfileWrite(
			principal.UID,
			principal.DisplayName,
			principal.Email,
			principal.PhotoURL,
			firstName,
			lastName,
			u.now(),
		), nil
	default:
		return nil, fmt.Errorf("get profile: %w", err)
	}
}

func (u *authUsecase) SignInWithGoogle(ctx context.Context, params GoogleSignInParams) (*AuthResult, error) {
	if err := popupError(params.PopupError, params.IDToken); err != nil {
		return nil, err
	}
	if u.google == nil {
		return nil, fmt.Errorf("%w: google sign-in is not configured", ErrFederatedAuth)
	}

	user, err := u.google.Verify(ctx, params.IDToken, params.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFederatedAuth, err)
	}

	return u.signInFederated(ctx, model.ProviderGoogle, user, params.Client)
}

func (u *authUsecase) SignInWithFacebook(ctx context.Context, params FacebookSignInParams) (*AuthResult, error) {
	if err := popupError(params.PopupError, params.AccessToken); err != nil {
		return nil, err
	}
	if u.facebook == nil {
		return nil, fmt.Errorf("%w: facebook sign-in is not configured", ErrFederatedAuth)
	}

	user, err := u.facebook.Verify(ctx, params.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFederatedAuth, err)
	}

	return u.signInFederated(ctx, model.ProviderFacebook, user, params.Client)
}

func (u *authUsecase) signInFederated(
	ctx context.Context,
	providerName model.IdentityProvider,
	user *provider.FederatedUser,
	client ClientInfo,
) (*AuthResult, error) {
	principal, err := u.identityProvider.SignInWithFederated(ctx, providerName, user)
	if err != nil {
		return nil, err
	}

	displayName := principal.DisplayName
	if displayName == "" {
		displayName = user.DisplayName
	}
	firstName, lastName := SplitDisplayName(displayName)

	write := model.NewProfileWrite(
		principal.UID,
		displayName,
		principal.Email,
		principal.PhotoURL,
		firstName,
		lastName,
		u.now(),
	)
	if err := u.profileRepo.UpsertProfile(ctx, principal.UID, write); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return u.completeSignIn(ctx, principal, client)
}

func (u *authUsecase) SignOut(ctx context.Context, claims *authtypes.JWTClaims) error {
	if claims == nil {
		return ErrAuthenticationRequired
	}

	if err := u.sessionRepo.DeleteSession(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*AuthResult, error) {
	claims := &authtypes.JWTClaims{}
	if err := u.jwtAuth.ParseToken(refreshToken, u.tokenCfg.RefreshTokenSecret, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationRequired, err)
	}

	session, err := u.liveSession(ctx, claims)
	if err != nil {
		return nil, err
	}
	if session.RefreshToken != refreshToken {
		return nil, ErrSessionRevoked
	}

	role, err := u.resolveRole(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, claims.UserID, session.ID.Hex(), role)
	if err != nil {
		return nil, err
	}

	principal := Principal{UID: claims.UserID}
	if profile, err := u.profileRepo.GetProfile(ctx, claims.UserID); err == nil {
		principal.Email = profile.Email
		principal.DisplayName = profile.DisplayName
		principal.PhotoURL = profile.PhotoURL
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	u.logger.Debug().
		Str("uid", claims.UserID).
		Str("ip", client.IPAddress).
		Msg("session refreshed")

	return &AuthResult{
		Principal:    principal,
		Tokens:       *tokens,
		Role:         role,
		RedirectPath: role.RedirectPath(),
	}, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (*authtypes.JWTClaims, error) {
	if accessToken == "" {
		return nil, ErrAuthenticationRequired
	}

	claims := &authtypes.JWTClaims{}
	if err := u.jwtAuth.ParseToken(accessToken, u.tokenCfg.AccessTokenSecret, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationRequired, err)
	}

	session, err := u.liveSession(ctx, claims)
	if err != nil {
		return nil, err
	}
	if session.AccessToken != accessToken {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, uid string) (*model.UserProfile, error) {
	profile, err := u.profileRepo.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("get profile: %w", err)
	}

	return profile, nil
}

// completeSignIn resolves the role once and opens a session carrying it.
func (u *authUsecase) completeSignIn(ctx context.Context, principal *Principal, client ClientInfo) (*AuthResult, error) {
	role, err := u.resolveRole(ctx, principal.UID)
	if err != nil {
		return nil, err
	}

	tokens, err := u.createAuthSession(ctx, principal.UID, role, client)
	if err != nil {
		return nil, err
	}

	u.logger.Info().
		Str("uid", principal.UID).
		Str("role", string(role)).
		Msg("signed in")

	return &AuthResult{
		Principal:    *principal,
		Tokens:       *tokens,
		Role:         role,
		RedirectPath: role.RedirectPath(),
	}, nil
}

func (u *authUsecase) resolveRole(ctx context.Context, uid string) (model.Role, error) {
	isAdmin, err := u.roleRepo.IsAdmin(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("resolve role: %w", err)
	}

	return model.RoleFromAdminMarker(isAdmin), nil
}

func (u *authUsecase) liveSession(ctx context.Context, claims *authtypes.JWTClaims) (*model.Session, error) {
	session, err := u.sessionRepo.GetSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionRevoked
		}

		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.UserID != claims.UserID {
		return nil, ErrSessionRevoked
	}

	return session, nil
}

func (u *authUsecase) createAuthSession(
	ctx context.Context,
	userID string,
	role model.Role,
	client ClientInfo,
) (*authtypes.Tokens, error) {
	session, err := u.sessionRepo.CreateSession(ctx, &model.Session{
		UserID:    userID,
		Role:      role,
		IPAddress: optional(client.IPAddress),
		UserAgent: optional(client.UserAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return u.issueTokens(ctx, userID, session.ID.Hex(), role)
}

func (u *authUsecase) issueTokens(
	ctx context.Context,
	userID, sessionID string,
	role model.Role,
) (*authtypes.Tokens, error) {
	now := u.now()

	accessToken, err := u.generateToken(userID, sessionID, role, u.tokenCfg.AccessTokenSecret, now, u.tokenCfg.AccessTokenExpiresIn)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateToken(userID, sessionID, role, u.tokenCfg.RefreshTokenSecret, now, u.tokenCfg.RefreshTokenExpiresIn)
	if err != nil {
		return nil, err
	}

	tokens := &authtypes.Tokens{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(u.tokenCfg.AccessTokenExpiresIn),
		RefreshTokenExpiresAt: now.Add(u.tokenCfg.RefreshTokenExpiresIn),
	}

	if _, err := u.sessionRepo.UpdateTokens(ctx, sessionID, repository.UpdateTokensParams{
		Role:                  role,
		AccessToken:           tokens.AccessToken,
		RefreshToken:          tokens.RefreshToken,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
	}); err != nil {
		return nil, fmt.Errorf("update session tokens: %w", err)
	}

	return tokens, nil
}

func (u *authUsecase) generateToken(
	userID, sessionID string,
	role model.Role,
	secret string,
	now time.Time,
	expiresIn time.Duration,
) (string, error) {
	claims := authtypes.JWTClaims{
		UserID:    userID,
		SessionID: sessionID,
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.jwtAuth.Issuer(),
			Audience:  jwt.ClaimStrings{u.jwtAuth.Audience()},
		},
	}

	token, err := u.jwtAuth.GenerateToken(claims, secret)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// popupError turns a popup failure or a missing credential into ErrFederatedAuth.
func popupError(reported, credential string) error {
	if reported != "" {
		return fmt.Errorf("%w (%s)", ErrPopupFailed, reported)
	}
	if credential == "" {
		return fmt.Errorf("%w: %w", ErrFederatedAuth, provider.ErrMissingCredential)
	}

	return nil
}

// SplitDisplayName splits at the first run of whitespace: "Ada Lovelace
// King" becomes ("Ada", "Lovelace King").
func SplitDisplayName(displayName string) (string, string) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return "", ""
	}

	idx := strings.IndexFunc(displayName, unicode.IsSpace)
	if idx < 0 {
		return displayName, ""
	}

	return displayName[:idx], strings.TrimSpace(displayName[idx:])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
