// Package session keeps the client's belief about who is logged in.
//
// The role set comes from the login reply and is used only to decide what
// to show; the session cookie held by the REST client is the authority.
package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/observable"
	"github.com/zgs/booking-client/pkg/validate"
)

type State struct {
	LoggedIn bool
	Username string
	Roles    model.RoleSet
}

func loggedOut() State {
	return State{Roles: model.RoleSet{}}
}

func (s State) clone() State {
	s.Roles = s.Roles.Clone()
	return s
}

type Store struct {
	log      *zap.Logger
	auth     Authenticator
	validate *validate.CustomValidator
	state    *observable.Value[State]
}

func NewStore(log *zap.Logger, auth Authenticator) *Store {
	return &Store{
		log:      log.Named("session"),
		auth:     auth,
		validate: validate.NewCustomValidator(),
		state:    observable.New(loggedOut()),
	}
}

func (s *Store) State() State {
	return s.state.Get().clone()
}

// Subscribe calls fn after every login and logout.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.state.Subscribe(func(st State) { fn(st.clone()) })
}

func (s *Store) LoggedIn() bool {
	return s.state.Get().LoggedIn
}

func (s *Store) Username() string {
	return s.state.Get().Username
}

func (s *Store) IsAdmin() bool {
	return s.state.Get().Roles.Has(model.RoleAdmin)
}

// Login errors are returned as the REST client produced them and leave the
// state untouched.
func (s *Store) Login(ctx context.Context, username, password string) (State, error) {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return s.State(), errs.Invalid("username", "is required")
	case password == "":
		return s.State(), errs.Invalid("password", "is required")
	}

	res, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.log.Info("login rejected", zap.String("username", username), zap.Error(err))
		return s.State(), err
	}

	st := State{
		LoggedIn: true,
		Username: res.Username,
		Roles:    model.ParseRoles(res.Roles),
	}
	if st.Username == "" {
		st.Username = username
	}
	s.state.Set(st)
	s.log.Info("logged in", zap.String("username", st.Username), zap.Int("roles", len(st.Roles)))
	return st.clone(), nil
}

// Logout always ends in the logged out state.
func (s *Store) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn("logout failed, local session cleared anyway", zap.Error(err))
	}
	s.state.Set(loggedOut())
}

// Register leaves the session as it is; use RegisterAndLogin to sign in.
func (s *Store) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validate.Validate(req); err != nil {
		return model.User{}, errs.FromValidator(err)
	}
	u, err := s.auth.Register(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *Store) RegisterAndLogin(ctx context.Context, req model.RegisterRequest) (State, error) {
	if _, err := s.Register(ctx, req); err != nil {
		return s.State(), err
	}
	return s.Login(ctx, req.Username, req.Password)
}
