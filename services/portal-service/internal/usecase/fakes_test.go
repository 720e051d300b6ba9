package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/repository"
	"github.com/vasapolrittideah/careers-portal/shared/mailer"
	"github.com/vasapolrittideah/careers-portal/shared/provider"
	"github.com/vasapolrittideah/careers-portal/shared/redislock"
)

var errDuplicateKey = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*model.Account{}}
}

func (r *fakeAccountRepo) CreateAccount(_ context.Context, account *model.Account) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.Email = strings.ToLower(account.Email)
	if account.Email != "" {
		for _, existing := range r.accounts {
			if existing.Email == account.Email {
				return nil, errDuplicateKey
			}
		}
	}

	stored := *account
	r.accounts[account.ID] = &stored

	return account, nil
}

func (r *fakeAccountRepo) GetAccount(_ context.Context, id string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *account

	return &copied, nil
}

func (r *fakeAccountRepo) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == strings.ToLower(email) {
			copied := *account
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeAccountRepo) UpdateAccount(
	_ context.Context,
	id string,
	params repository.UpdateAccountParams,
) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if params.DisplayName != nil {
		account.DisplayName = *params.DisplayName
	}
	if params.PhotoURL != nil {
		account.PhotoURL = *params.PhotoURL
	}
	copied := *account

	return &copied, nil
}

func (r *fakeAccountRepo) DeleteAccount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, id)

	return nil
}

func (r *fakeAccountRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.accounts)
}

type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities []*model.Identity
	lastLogins int
	createErr  error
}

func (r *fakeIdentityRepo) CreateIdentity(_ context.Context, identity *model.Identity) (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.identities {
		if existing.Provider == identity.Provider && existing.ProviderID == identity.ProviderID {
			return nil, errDuplicateKey
		}
	}
	identity.ID = bson.NewObjectID()
	stored := *identity
	r.identities = append(r.identities, &stored)

	return identity, nil
}

func (r *fakeIdentityRepo) GetIdentityByProvider(
	_ context.Context,
	providerID string,
	providerName model.IdentityProvider,
) (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, identity := range r.identities {
		if identity.Provider == providerName && identity.ProviderID == providerID {
			copied := *identity
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeIdentityRepo) UpdateLastLogin(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, identity := range r.identities {
		if identity.ID == id {
			r.lastLogins++
			return nil
		}
	}

	return mongo.ErrNoDocuments
}

func (r *fakeIdentityRepo) DeleteIdentitiesByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.identities[:0]
	for _, identity := range r.identities {
		if identity.UserID != userID {
			kept = append(kept, identity)
		}
	}
	r.identities = kept

	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*model.Session{}}
}

func (r *fakeSessionRepo) CreateSession(_ context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = bson.NewObjectID()
	stored := *session
	r.sessions[session.ID.Hex()] = &stored

	return session, nil
}

func (r *fakeSessionRepo) GetSession(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *session

	return &copied, nil
}

func (r *fakeSessionRepo) UpdateTokens(
	_ context.Context,
	id string,
	params repository.UpdateTokensParams,
) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	session.Role = params.Role
	session.AccessToken = params.AccessToken
	session.RefreshToken = params.RefreshToken
	session.AccessTokenExpiresAt = params.AccessTokenExpiresAt
	session.RefreshTokenExpiresAt = params.RefreshTokenExpiresAt
	copied := *session

	return &copied, nil
}

func (r *fakeSessionRepo) DeleteSession(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)

	return nil
}

// fakeProfileRepo applies model.ProfileFieldPolicy the way the Mongo upsert does.
type fakeProfileRepo struct {
	mu      sync.Mutex
	docs    map[string]map[string]any
	upserts int
	err     error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{docs: map[string]map[string]any{}}
}

func (r *fakeProfileRepo) UpsertProfile(_ context.Context, uid string, write model.ProfileWrite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.upserts++

	doc, exists := r.docs[uid]
	if !exists {
		doc = map[string]any{}
		r.docs[uid] = doc
	}
	for field, value := range write {
		if exists && model.ProfileFieldPolicy(field) == model.SetOnce {
			continue
		}
		doc[field] = value
	}

	return nil
}

func (r *fakeProfileRepo) GetProfile(_ context.Context, uid string) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[uid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	str := func(field string) string {
		s, _ := doc[field].(string)
		return s
	}
	tm := func(field string) *time.Time {
		t, ok := doc[field].(time.Time)
		if !ok {
			return nil
		}
		return &t
	}

	return &model.UserProfile{
		UID:         uid,
		ID:          str(model.ProfileFieldID),
		DisplayName: str(model.ProfileFieldDisplayName),
		Email:       str(model.ProfileFieldEmail),
		PhotoURL:    str(model.ProfileFieldPhotoURL),
		FirstName:   str(model.ProfileFieldFirstName),
		LastName:    str(model.ProfileFieldLastName),
		LastLogin:   tm(model.ProfileFieldLastLogin),
		SignUpDate:  tm(model.ProfileFieldSignUpDate),
	}, nil
}

type fakeRoleRepo struct {
	admins map[string]bool
	calls  int
}

func (r *fakeRoleRepo) IsAdmin(_ context.Context, uid string) (bool, error) {
	r.calls++
	return r.admins[uid], nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications []*model.Application
	err          error
}

func (r *fakeApplicationRepo) CreateApplication(
	_ context.Context,
	application *model.Application,
) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	application.ID = bson.NewObjectID()
	r.applications = append(r.applications, application)

	return application, nil
}

func (r *fakeApplicationRepo) ListApplicationsByUser(_ context.Context, uid string) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Application
	for i := len(r.applications) - 1; i >= 0; i-- {
		if r.applications[i].UserProfileID == uid {
			out = append(out, r.applications[i])
		}
	}

	return out, r.err
}

func (r *fakeApplicationRepo) ListRecentApplications(_ context.Context, limit int64) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Application
	for i := len(r.applications) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, r.applications[i])
	}

	return out, r.err
}

type fakeGoogleVerifier struct {
	user *provider.FederatedUser
	err  error
}

func (v *fakeGoogleVerifier) Verify(_ context.Context, _, _ string) (*provider.FederatedUser, error) {
	return v.user, v.err
}

type fakeFacebookVerifier struct {
	user *provider.FederatedUser
	err  error
}

func (v *fakeFacebookVerifier) Verify(_ context.Context, _ string) (*provider.FederatedUser, error) {
	return v.user, v.err
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired []string
}

func (l *fakeLocker) Acquire(_ context.Context, key string) (func(context.Context), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return nil, redislock.ErrLocked
	}
	l.held[key] = true
	l.acquired = append(l.acquired, key)

	return func(context.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, nil
}

type fakeSender struct {
	sent []mailer.Email
	err  error
}

func (s *fakeSender) Send(email mailer.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

var errStoreDown = errors.New("store unavailable")

// fakeClock starts in the past so Advance never produces tokens that are
// not yet valid.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
