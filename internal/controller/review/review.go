// Package review lists, submits and deletes the reviews of one product or
// room.
package review

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/controller"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/observable"
	"github.com/zgs/booking-client/pkg/validate"
)

type Kind uint8

const (
	Product Kind = iota + 1
	Room
)

func (k Kind) String() string {
	switch k {
	case Product:
		return "product"
	case Room:
		return "room"
	default:
		return "unknown"
	}
}

type Target struct {
	Kind Kind
	ID   int64
}

type State struct {
	Target  Target
	Reviews []model.Review
	Average float64
	Err     string
	Message string
}

func (s State) clone() State {
	s.Reviews = append([]model.Review(nil), s.Reviews...)
	return s
}

type Controller struct {
	log      *zap.Logger
	svc      ReviewService
	who      Identity
	confirm  controller.Confirmer
	validate *validate.CustomValidator

	mu    sync.Mutex
	st    State
	ver   uint64
	state *observable.Value[State]
}

func New(log *zap.Logger, svc ReviewService, who Identity, confirm controller.Confirmer) *Controller {
	return &Controller{
		log:      log.Named("review"),
		svc:      svc,
		who:      who,
		confirm:  confirm,
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

func (c *Controller) target() Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.Target
}

func (c *Controller) Load(ctx context.Context, t Target) error {
	var (
		list []model.Review
		err  error
	)
	switch t.Kind {
	case Product:
		list, err = c.svc.ForProduct(ctx, t.ID)
	case Room:
		list, err = c.svc.ForRoom(ctx, t.ID)
	default:
		return errs.Invalid("target", "must be a product or a room")
	}
	if err != nil {
		c.log.Error("load", zap.Stringer("kind", t.Kind), zap.Int64("id", t.ID), zap.Error(err))
		c.update(func(st *State) { st.Err = errs.Failed("loading reviews", err) })
		return err
	}
	c.update(func(st *State) {
		st.Target = t
		st.Reviews = list
		st.Average = average(list)
		st.Err = ""
	})
	return nil
}

func (c *Controller) Reload(ctx context.Context) error {
	return c.Load(ctx, c.target())
}

// Submit posts a review for the loaded target and reloads the list.
func (c *Controller) Submit(ctx context.Context, rating int, comment string) error {
	if !c.who.LoggedIn() {
		return errs.Invalid("", "please log in to write a review")
	}
	req := model.CreateReviewRequest{Rating: rating, Comment: strings.TrimSpace(comment)}
	if err := c.validate.Validate(req); err != nil {
		return errs.FromValidator(err)
	}

	t := c.target()
	var err error
	switch t.Kind {
	case Product:
		_, err = c.svc.CreateForProduct(ctx, t.ID, req)
	case Room:
		_, err = c.svc.CreateForRoom(ctx, t.ID, req)
	default:
		return errs.Invalid("target", "load a product or a room first")
	}
	if err != nil {
		c.log.Error("submit", zap.Stringer("kind", t.Kind), zap.Int64("id", t.ID), zap.Error(err))
		c.update(func(st *State) { st.Err = errs.Failed("submit review", err) })
		return err
	}
	c.update(func(st *State) { st.Message = "review submitted" })
	return c.Reload(ctx)
}

// CanDelete only decides whether to offer the action; the server enforces
// the real rule.
func (c *Controller) CanDelete(r model.Review) bool {
	if !c.who.LoggedIn() {
		return false
	}
	return c.who.IsAdmin() || (r.Username != "" && r.Username == c.who.Username())
}

func (c *Controller) Delete(ctx context.Context, r model.Review) (bool, error) {
	ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("Delete the review by %s?", r.Username))
	if err != nil || !ok {
		return false, err
	}
	if err := c.svc.Delete(ctx, r.ID); err != nil {
		c.log.Error("delete", zap.Int64("id", r.ID), zap.Error(err))
		c.update(func(st *State) { st.Err = errs.Failed("delete review", err) })
		return false, err
	}
	c.update(func(st *State) { st.Message = "review deleted" })
	return true, c.Reload(ctx)
}

func average(list []model.Review) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return float64(sum) / float64(len(list))
}
