// Package auth keeps the local account registry and the login session.
// Accounts exist only on this device.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/store"
)

var (
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	isoMillis      = "2006-01-02T15:04:05.000Z"
)

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

// account is one registry entry. Password holds a plaintext password written
// by older versions and is replaced by PasswordHash on the next login.
type account struct {
	PasswordHash string     `json:"passwordHash,omitempty"`
	Password     string     `json:"password,omitempty"`
	User         model.User `json:"user"`
}

// Service registers users and tracks who is logged in.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
	cost   int
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost sets the hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func NewService(s store.Store, logger *zap.Logger, opts ...Option) *Service {
	svc := &Service{store: s, logger: logger, now: time.Now, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ValidateRegistration checks the registration form fields.
func ValidateRegistration(username, email, password string) error {
	var v model.ValidationError
	if utf8.RuneCountInString(username) < minUsernameLen {
		v.Add("username", fmt.Sprintf("must be at least %d characters", minUsernameLen))
	}
	if !emailRe.MatchString(email) {
		v.Add("email", "must be a valid email address")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		v.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	return v.Err()
}

// Register creates an account and logs it in.
func (s *Service) Register(ctx context.Context, username, email, password string) (model.User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if err := ValidateRegistration(username, email, password); err != nil {
		return model.User{}, err
	}

	accounts, err := s.accounts(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, a := range accounts {
		if a.User.Username == username {
			return model.User{}, ErrUsernameTaken
		}
	}
	for _, a := range accounts {
		if a.User.Email == email {
			return model.User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: s.now().UTC().Format(isoMillis),
	}
	accounts[user.ID] = account{PasswordHash: string(hash), User: user}
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return model.User{}, err
	}
	if err := s.setSession(ctx, &user); err != nil {
		return model.User{}, err
	}
	s.logger.Info("Registered user", zap.String("user_id", user.ID))
	return user, nil
}

// Login authenticates by username or email and starts a session.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (model.User, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	accounts, err := s.accounts(ctx)
	if err != nil {
		return model.User{}, err
	}

	id, ok := findAccount(accounts, usernameOrEmail)
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	acct := accounts[id]

	switch {
	case acct.PasswordHash != "":
		if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
			return model.User{}, ErrInvalidPassword
		}
	case acct.Password != "" && acct.Password == password:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			return model.User{}, fmt.Errorf("hash password: %w", err)
		}
		acct.PasswordHash, acct.Password = string(hash), ""
		accounts[id] = acct
		if err := s.saveAccounts(ctx, accounts); err != nil {
			return model.User{}, err
		}
		s.logger.Info("Upgraded stored password to bcrypt", zap.String("user_id", id))
	default:
		return model.User{}, ErrInvalidPassword
	}

	user := acct.User
	if err := s.setSession(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// findAccount prefers a username match over an email match. Ids are
// visited in sorted order so the lookup is deterministic.
func findAccount(accounts map[string]account, usernameOrEmail string) (string, bool) {
	ids := make([]string, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if accounts[id].User.Username == usernameOrEmail {
			return id, true
		}
	}
	for _, id := range ids {
		if accounts[id].User.Email == usernameOrEmail {
			return id, true
		}
	}
	return "", false
}

// Logout ends the session and wipes this device's user data. The account
// registry is kept.
func (s *Service) Logout(ctx context.Context) error {
	keys := append([]string{store.KeyAuth}, store.UserDataKeys...)
	for _, k := range keys {
		if err := s.store.Remove(ctx, k); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	s.logger.Info("Logged out, user data cleared")
	return nil
}

// State returns the session. Missing or corrupt state reads as logged out.
func (s *Service) State(ctx context.Context) model.AuthState {
	var st model.AuthState
	if err := store.GetJSON(ctx, s.store, store.KeyAuth, &st); err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			s.logger.Warn("Failed to parse auth state", zap.Error(err))
		}
		return model.AuthState{}
	}
	return st
}

// Current returns the logged-in user, or nil.
func (s *Service) Current(ctx context.Context) *model.User {
	return s.State(ctx).User
}

func (s *Service) IsAuthenticated(ctx context.Context) bool {
	st := s.State(ctx)
	return st.IsAuthenticated && st.User != nil
}

// accounts loads the registry keyed by user id. A corrupt registry is
// logged and read as empty.
func (s *Service) accounts(ctx context.Context) (map[string]account, error) {
	accounts := map[string]account{}
	err := store.GetJSON(ctx, s.store, store.KeyUsers, &accounts)
	switch {
	case err == nil:
		if accounts == nil {
			accounts = map[string]account{}
		}
		return accounts, nil
	case store.IsMissing(err):
		if errors.Is(err, store.ErrCorrupt) {
			s.logger.Warn("Failed to parse user registry", zap.Error(err))
		}
		return map[string]account{}, nil
	default:
		return nil, fmt.Errorf("load users: %w", err)
	}
}

func (s *Service) saveAccounts(ctx context.Context, accounts map[string]account) error {
	if err := store.SetJSON(ctx, s.store, store.KeyUsers, accounts); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *Service) setSession(ctx context.Context, user *model.User) error {
	if err := store.SetJSON(ctx, s.store, store.KeyAuth, model.AuthState{IsAuthenticated: true, User: user}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
