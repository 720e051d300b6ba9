package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/repository"
	"github.com/vasapolrittideah/careers-portal/shared/provider"
	"github.com/vasapolrittideah/careers-portal/shared/security"
)

const minPasswordLength = 6

// Principal is an authenticated account as seen by the auth actions.
type Principal struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// IdentityProvider owns accounts and the credentials that sign into them.
type IdentityProvider interface {
	CreateUserWithPassword(ctx context.Context, email, password, displayName string) (*Principal, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Principal, error)
	SignInWithFederated(
		ctx context.Context,
		providerName model.IdentityProvider,
		user *provider.FederatedUser,
	) (*Principal, error)
	// DeleteUser removes the account and every identity linked to it.
	DeleteUser(ctx context.Context, uid string) error
}

type localIdentityProvider struct {
	accountRepo  repository.AccountRepository
	identityRepo repository.IdentityRepository
	logger       *zerolog.Logger
}

// NewLocalIdentityProvider keeps accounts and identities in the document store.
func NewLocalIdentityProvider(
	accountRepo repository.AccountRepository,
	identityRepo repository.IdentityRepository,
	logger *zerolog.Logger,
) IdentityProvider {
	return &localIdentityProvider{
		accountRepo:  accountRepo,
		identityRepo: identityRepo,
		logger:       logger,
	}
}

func (p *localIdentityProvider) CreateUserWithPassword(
	ctx context.Context,
	email, password, displayName string,
) (*Principal, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := p.accountRepo.CreateAccount(ctx, &model.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyInUse
		}

		return nil, fmt.Errorf("create account: %w", err)
	}

	if _, err := p.identityRepo.CreateIdentity(ctx, &model.Identity{
		UserID:     account.ID,
		Provider:   model.ProviderPassword,
		ProviderID: account.Email,
		Email:      account.Email,
	}); err != nil {
		p.rollbackAccount(ctx, account.ID)
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyInUse
		}

		return nil, fmt.Errorf("create identity: %w", err)
	}

	return principalFromAccount(account), nil
}

func (p *localIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*Principal, error) {
	account, err := p.accountRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("get account: %w", err)
	}

	// Federated-only accounts have no password to match.
	if account.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if ok, err := security.VerifyPassword(password, account.PasswordHash); err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	identity, err := p.identityRepo.GetIdentityByProvider(ctx, account.Email, model.ProviderPassword)
	switch {
	case err == nil:
		if err := p.identityRepo.UpdateLastLogin(ctx, identity.ID); err != nil {
			return nil, fmt.Errorf("update last login: %w", err)
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		p.logger.Warn().Str("uid", account.ID).Msg("password account has no password identity")
	default:
		return nil, fmt.Errorf("get identity: %w", err)
	}

	return principalFromAccount(account), nil
}

func (p *localIdentityProvider) SignInWithFederated(
	ctx context.Context,
	providerName model.IdentityProvider,
	user *provider.FederatedUser,
) (*Principal, error) {
	if user == nil || user.ProviderUserID == "" {
		return nil, fmt.Errorf("%w: %w", ErrFederatedAuth, provider.ErrMissingCredential)
	}

	identity, err := p.identityRepo.GetIdentityByProvider(ctx, user.ProviderUserID, providerName)
	if err == nil {
		return p.signInLinkedAccount(ctx, identity, user)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("get identity: %w", err)
	}

	if user.Email != "" {
		if _, err := p.accountRepo.GetAccountByEmail(ctx, user.Email); err == nil {
			return nil, ErrAccountExistsWithDifferentCredential
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("get account: %w", err)
		}
	}

	account, err := p.accountRepo.CreateAccount(ctx, &model.Account{
		ID:          uuid.NewString(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAccountExistsWithDifferentCredential
		}

		return nil, fmt.Errorf("create account: %w", err)
	}

	if _, err := p.identityRepo.CreateIdentity(ctx, &model.Identity{
		UserID:     account.ID,
		Provider:   providerName,
		ProviderID: user.ProviderUserID,
		Email:      strings.ToLower(user.Email),
	}); err != nil {
		p.rollbackAccount(ctx, account.ID)
		return nil, fmt.Errorf("create identity: %w", err)
	}

	return principalFromAccount(account), nil
}

func (p *localIdentityProvider) signInLinkedAccount(
	ctx context.Context,
	identity *model.Identity,
	user *provider.FederatedUser,
) (*Principal, error) {
	if err := p.identityRepo.UpdateLastLogin(ctx, identity.ID); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	account, err := p.accountRepo.GetAccount(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	params := repository.UpdateAccountParams{}
	if user.DisplayName != "" && user.DisplayName != account.DisplayName {
		params.DisplayName = &user.DisplayName
	}
	if user.PhotoURL != "" && user.PhotoURL != account.PhotoURL {
		params.PhotoURL = &user.PhotoURL
	}
	if params.DisplayName != nil || params.PhotoURL != nil {
		if account, err = p.accountRepo.UpdateAccount(ctx, account.ID, params); err != nil {
			return nil, fmt.Errorf("update account: %w", err)
		}
	}

	return principalFromAccount(account), nil
}

func (p *localIdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.identityRepo.DeleteIdentitiesByUser(ctx, uid); err != nil {
		return fmt.Errorf("delete identities: %w", err)
	}
	if err := p.accountRepo.DeleteAccount(ctx, uid); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	return nil
}

// rollbackAccount removes an account whose identity could not be stored.
func (p *localIdentityProvider) rollbackAccount(ctx context.Context, uid string) {
	if err := p.accountRepo.DeleteAccount(context.WithoutCancel(ctx), uid); err != nil {
		p.logger.Error().Err(err).Str("uid", uid).Msg("failed to roll back account")
	}
}

func principalFromAccount(account *model.Account) *Principal {
	return &Principal{
		UID:         account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		PhotoURL:    account.PhotoURL,
	}
}
