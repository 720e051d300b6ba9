package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrInvalidGoogleAudience = errors.New("invalid google audience")
	ErrGoogleSubjectMismatch = errors.New("google userinfo does not match id token")
)

// GoogleVerifier validates the credentials produced by the Google sign-in popup.
type GoogleVerifier struct {
	clientID   string
	httpClient *http.Client
	opts       []option.ClientOption
}

// NewGoogleVerifier creates a verifier that accepts ID tokens issued for clientID.
// Extra options are applied to every Google API client it builds.
func NewGoogleVerifier(clientID string, httpClient *http.Client, opts ...option.ClientOption) *GoogleVerifier {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GoogleVerifier{
		clientID:   clientID,
		httpClient: httpClient,
		opts:       opts,
	}
}

// Verify checks the ID token audience with Google's tokeninfo endpoint and, when an
// access token is present, reads the profile from the userinfo endpoint.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken, accessToken string) (*FederatedUser, error) {
	if idToken == "" {
		return nil, ErrMissingCredential
	}

	tokenInfo, err := v.validateIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	// Unverified addresses are dropped so they never match an existing account.
	user := &FederatedUser{ProviderUserID: tokenInfo.UserId}
	if tokenInfo.VerifiedEmail {
		user.Email = tokenInfo.Email
	}

	if accessToken == "" {
		return user, nil
	}

	userInfo, err := v.userInfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if userInfo.Id != "" && userInfo.Id != tokenInfo.UserId {
		return nil, ErrGoogleSubjectMismatch
	}

	user.DisplayName = userInfo.Name
	user.PhotoURL = userInfo.Picture
	if user.Email == "" && userInfo.VerifiedEmail != nil && *userInfo.VerifiedEmail {
		user.Email = userInfo.Email
	}

	return user, nil
}

func (v *GoogleVerifier) validateIDToken(ctx context.Context, idToken string) (*googleoauth2.Tokeninfo, error) {
	opts := append([]option.ClientOption{option.WithHTTPClient(v.httpClient)}, v.opts...)

	service, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create google oauth2 service: %w", err)
	}

	tokenInfo, err := service.Tokeninfo().IdToken(idToken).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejectedCredential, err)
	}

	if tokenInfo.Audience != v.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	return tokenInfo, nil
}

func (v *GoogleVerifier) userInfo(ctx context.Context, accessToken string) (*googleoauth2.Userinfo, error) {
	// The oauth2 client wraps v.httpClient's transport and adds the bearer token.
	baseCtx := context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	authClient := oauth2.NewClient(baseCtx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	opts := append([]option.ClientOption{option.WithHTTPClient(authClient)}, v.opts...)

	service, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create google oauth2 service: %w", err)
	}

	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejectedCredential, err)
	}

	return userInfo, nil
}
