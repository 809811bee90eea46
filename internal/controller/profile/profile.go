// Package profile shows and edits the logged in user's own account.
package profile

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/observable"
	"github.com/zgs/booking-client/internal/service/user"
	"github.com/zgs/booking-client/pkg/validate"
)

var _ UserService = (*user.Service)(nil)

type UserService interface {
	Me(ctx context.Context) (model.User, error)
	UpdateMe(ctx context.Context, req model.UpdateUserRequest) (model.User, error)
	UpdatePassword(ctx context.Context, req model.UpdatePasswordRequest) error
}

type State struct {
	User    model.User
	Edit    *model.UpdateUserRequest
	Err     string
	Message string
}

func (s State) clone() State {
	if s.Edit != nil {
		e := *s.Edit
		s.Edit = &e
	}
	return s
}

type Controller struct {
	log      *zap.Logger
	svc      UserService
	validate *validate.CustomValidator

	mu    sync.Mutex
	st    State
	ver   uint64
	state *observable.Value[State]
}

func New(log *zap.Logger, svc UserService) *Controller {
	return &Controller{
		log:      log.Named("profile"),
		svc:      svc,
		validate: validate.NewCustomValidator(),
		state:    observable.New(State{}),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	return c.state.Subscribe(fn)
}

func (c *Controller) update(fn func(st *State)) {
	c.mu.Lock()
	fn(&c.st)
	c.ver++
	ver, snap := c.ver, c.st.clone()
	c.mu.Unlock()
	c.state.Publish(ver, snap)
}

func (c *Controller) fail(action string, err error) error {
	c.log.Error(action, zap.Error(err))
	c.update(func(st *State) { st.Err = errs.Failed(action, err) })
	return err
}

func (c *Controller) Load(ctx context.Context) error {
	u, err := c.svc.Me(ctx)
	if err != nil {
		return c.fail("loading profile", err)
	}
	c.update(func(st *State) {
		st.User = u
		st.Err = ""
	})
	return nil
}

func (c *Controller) StartEdit() {
	c.update(func(st *State) {
		st.Edit = &model.UpdateUserRequest{Email: st.User.Email, Fullname: st.User.Fullname}
		st.Message = ""
	})
}

func (c *Controller) CancelEdit() {
	c.update(func(st *State) { st.Edit = nil })
}

// Save sends the email and full name; without an edit in progress it does
// nothing.
func (c *Controller) Save(ctx context.Context, req model.UpdateUserRequest) error {
	c.mu.Lock()
	editing := c.st.Edit != nil
	c.mu.Unlock()
	if !editing {
		return nil
	}
	req = model.UpdateUserRequest{Email: strings.TrimSpace(req.Email), Fullname: strings.TrimSpace(req.Fullname)}
	if err := c.validate.Validate(req); err != nil {
		return errs.FromValidator(err)
	}
	u, err := c.svc.UpdateMe(ctx, req)
	if err != nil {
		return c.fail("update profile", err)
	}
	c.update(func(st *State) {
		st.User = u
		st.Edit = nil
		st.Err = ""
		st.Message = "profile updated"
	})
	return nil
}

func (c *Controller) ChangePassword(ctx context.Context, current, next, confirm string) error {
	req := model.UpdatePasswordRequest{OldPassword: current, NewPassword: next}
	if err := c.validate.Validate(req); err != nil {
		return errs.FromValidator(err)
	}
	if next != confirm {
		return errs.Invalid("confirmPassword", "does not match newPassword")
	}
	if err := c.svc.UpdatePassword(ctx, req); err != nil {
		return c.fail("change password", err)
	}
	c.update(func(st *State) {
		st.Err = ""
		st.Message = "password changed"
	})
	return nil
}
