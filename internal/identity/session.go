// Package identity manages the client-side session: who is logged in,
// persisted as a handful of local-state keys that every page reads.
package identity

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
	"github.com/marketfoods/storefront/pkg/localstore"
	"github.com/marketfoods/storefront/pkg/logger"
)

// Identity keys written as a unit on login and removed as a unit on
// logout.
const (
	KeyUserID    = "userId"
	KeyUserName  = "userName"
	KeyUserEmail = "userEmail"
	KeyUserRole  = "userRole"
	KeyUserToken = "userToken"
	KeyUserDate  = "userDate"
)

var identityKeys = []string{
	KeyUserID, KeyUserName, KeyUserEmail, KeyUserRole, KeyUserToken, KeyUserDate,
}

// Snapshot is the current session as persisted. A zero UserID with an
// empty token means nobody is logged in.
type Snapshot struct {
	UserID int
	Name   string
	Email  string
	Role   string
	Token  string
}

func (s Snapshot) LoggedIn() bool {
	return s.Token != ""
}

func (s Snapshot) IsAdministrator() bool {
	return s.Role == api.RoleAdministrator
}

// CanManageProducts reports whether the product-management surface is
// available: sellers and administrators.
func (s Snapshot) CanManageProducts() bool {
	return s.Role == api.RoleSeller || s.Role == api.RoleAdministrator
}

// CanViewSellerOrders reports whether incoming orders are visible;
// sellers only.
func (s Snapshot) CanViewSellerOrders() bool {
	return s.Role == api.RoleSeller
}

type authClient interface {
	Login(ctx context.Context, in api.LoginInput) (*api.User, error)
	Register(ctx context.Context, in api.RegisterInput) (int, error)
}

type Session struct {
	state localstore.Store
	auth  authClient
	logg  *logger.Logger
	clock func() time.Time
}

func NewSession(state localstore.Store, auth authClient, logg *logger.Logger) (*Session, error) {
	if state == nil {
		return nil, fmt.Errorf("state store required")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Session{state: state, auth: auth, logg: logg, clock: time.Now}, nil
}

// Current reads the persisted session. Unparseable or missing keys read
// as a logged-out snapshot.
func (s *Session) Current(ctx context.Context) Snapshot {
	snap := Snapshot{}
	if raw, ok, _ := s.state.Get(ctx, KeyUserID); ok {
		if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && id > 0 {
			snap.UserID = id
		}
	}
	snap.Name = s.readKey(ctx, KeyUserName)
	snap.Email = s.readKey(ctx, KeyUserEmail)
	snap.Role = s.readKey(ctx, KeyUserRole)
	snap.Token = s.readKey(ctx, KeyUserToken)
	if snap.Role == "" {
		snap.Role = api.RoleBuyer
	}
	return snap
}

// UserID is Current's id, for use as the API identity callback.
func (s *Session) UserID(ctx context.Context) int {
	return s.Current(ctx).UserID
}

func (s *Session) Login(ctx context.Context, email, password string) (*Snapshot, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.auth.Login(ctx, api.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	// The token is a client-side login marker, not a server credential;
	// authorization rides on the numeric user id.
	token := fmt.Sprintf("token-%d", s.clock().UnixMilli())
	snap := Snapshot{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Token:  token,
	}
	if err := s.store(ctx, snap); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithUserID(ctx, strconv.Itoa(user.ID)), "logged in")
	return &snap, nil
}

// RegisterParams is the registration form.
type RegisterParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

func (s *Session) Register(ctx context.Context, params RegisterParams) (*Snapshot, error) {
	if params.Password != params.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.Email) == "" || params.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}
	role := params.Role
	if role != api.RoleSeller {
		role = api.RoleBuyer
	}

	userID, err := s.auth.Register(ctx, api.RegisterInput{
		Name:     strings.TrimSpace(params.Name),
		Email:    strings.TrimSpace(params.Email),
		Password: params.Password,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	snap := Snapshot{
		UserID: userID,
		Name:   strings.TrimSpace(params.Name),
		Email:  strings.TrimSpace(params.Email),
		Role:   role,
		Token:  fmt.Sprintf("token-%d", userID),
	}
	if err := s.store(ctx, snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Logout removes every identity key. Cart and history stay put.
func (s *Session) Logout(ctx context.Context) error {
	for _, key := range identityKeys {
		if err := s.state.Delete(ctx, key); err != nil {
			return fmt.Errorf("removing %s: %w", key, err)
		}
	}
	return nil
}

// Subscribe invokes fn with a fresh snapshot whenever local state
// changes, the analog of re-rendering auth-dependent UI on the storage
// event. Backends without change notification return an error.
func (s *Session) Subscribe(fn func(Snapshot)) (func(), error) {
	notifier, ok := s.state.(localstore.Notifier)
	if !ok {
		return nil, fmt.Errorf("state backend cannot notify changes")
	}
	return notifier.Subscribe(func() {
		fn(s.Current(context.Background()))
	})
}

func (s *Session) store(ctx context.Context, snap Snapshot) error {
	values := map[string]string{
		KeyUserID:    strconv.Itoa(snap.UserID),
		KeyUserName:  snap.Name,
		KeyUserEmail: snap.Email,
		KeyUserRole:  snap.Role,
		KeyUserToken: snap.Token,
		KeyUserDate:  s.clock().Format("2006-01-02"),
	}
	for key, value := range values {
		if err := s.state.Set(ctx, key, value); err != nil {
			return fmt.Errorf("storing %s: %w", key, err)
		}
	}
	return nil
}

func (s *Session) readKey(ctx context.Context, key string) string {
	raw, _, _ := s.state.Get(ctx, key)
	return raw
}
