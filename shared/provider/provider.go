package provider

import "errors"

var (
	ErrMissingCredential  = errors.New("missing federated credential")
	ErrRejectedCredential = errors.New("federated credential rejected by provider")
)

// FederatedUser is the identity a provider vouches for after a successful popup sign-in.
type FederatedUser struct {
	ProviderUserID string
	Email          string
	DisplayName    string
	PhotoURL       string
}
