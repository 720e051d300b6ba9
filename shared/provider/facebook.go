package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const defaultGraphURL = "https://graph.facebook.com/v19.0"

var ErrInvalidFacebookApp = errors.New("facebook token was issued for another app")

// FacebookVerifier validates access tokens produced by the Facebook login popup.
type FacebookVerifier struct {
	appID      string
	appSecret  string
	graphURL   string
	httpClient *http.Client
}

// NewFacebookVerifier creates a verifier for tokens issued to appID.
// An empty graphURL selects the public Graph API.
func NewFacebookVerifier(appID, appSecret, graphURL string, httpClient *http.Client) *FacebookVerifier {
	if graphURL == "" {
		graphURL = defaultGraphURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &FacebookVerifier{
		appID:      appID,
		appSecret:  appSecret,
		graphURL:   strings.TrimRight(graphURL, "/"),
		httpClient: httpClient,
	}
}

type facebookDebugToken struct {
	Data struct {
		AppID   string `json:"app_id"`
		IsValid bool   `json:"is_valid"`
		UserID  string `json:"user_id"`
	} `json:"data"`
}

type facebookProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// Verify inspects the token with Graph debug_token and then reads the user's profile.
func (v *FacebookVerifier) Verify(ctx context.Context, accessToken string) (*FederatedUser, error) {
	if accessToken == "" {
		return nil, ErrMissingCredential
	}

	debug, err := v.debugToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if !debug.Data.IsValid {
		return nil, ErrRejectedCredential
	}
	if debug.Data.AppID != v.appID {
		return nil, ErrInvalidFacebookApp
	}

	baseCtx := context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	client := oauth2.NewClient(baseCtx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	var profile facebookProfile
	if err := v.getJSON(ctx, client, v.graphURL+"/me?fields=id,name,email,picture.type(large)", &profile); err != nil {
		return nil, err
	}

	if profile.ID != debug.Data.UserID {
		return nil, ErrRejectedCredential
	}

	return &FederatedUser{
		ProviderUserID: profile.ID,
		Email:          profile.Email,
		DisplayName:    profile.Name,
		PhotoURL:       profile.Picture.Data.URL,
	}, nil
}

func (v *FacebookVerifier) debugToken(ctx context.Context, accessToken string) (*facebookDebugToken, error) {
	query := url.Values{}
	query.Set("input_token", accessToken)
	query.Set("access_token", v.appID+"|"+v.appSecret)

	var debug facebookDebugToken
	if err := v.getJSON(ctx, v.httpClient, v.graphURL+"/debug_token?"+query.Encode(), &debug); err != nil {
		return nil, err
	}

	return &debug, nil
}

func (v *FacebookVerifier) getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call facebook graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: graph returned status %d", ErrRejectedCredential, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}

	return nil
}
