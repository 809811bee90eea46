// Package paged mirrors one page of a remote list together with an edit
// buffer. The server is the source of truth: every successful mutation is
// followed by a reload, never by patching the local items.
package paged

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/controller"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/observable"
)

const DefaultPageSize = 10

// Ops binds a controller to one resource. Update and Delete may be nil.
type Ops[T any] struct {
	List     func(ctx context.Context, q model.PageQuery) (model.Page[T], error)
	Update   func(ctx context.Context, item T) error
	Delete   func(ctx context.Context, item T) error
	Describe func(item T) string
}

type State[T any] struct {
	Items         []T
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
	Keyword       string
	Edit          *T
	Loading       bool
	Err           string
	Message       string
}

func (s State[T]) clone() State[T] {
	s.Items = append(make([]T, 0, len(s.Items)), s.Items...)
	if s.Edit != nil {
		e := *s.Edit
		s.Edit = &e
	}
	return s
}

type Option[T any] func(c *Controller[T])

func WithPageSize[T any](size int) Option[T] {
	return func(c *Controller[T]) {
		if size > 0 {
			c.st.Size = size
		}
	}
}

type Controller[T any] struct {
	log     *zap.Logger
	name    string
	ops     Ops[T]
	confirm controller.Confirmer

	mu    sync.Mutex
	st    State[T]
	ver   uint64
	state *observable.Value[State[T]]
}

func New[T any](log *zap.Logger, name string, ops Ops[T], confirm controller.Confirmer, opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		log:     log.Named(name),
		name:    name,
		ops:     ops,
		confirm: confirm,
		st:      State[T]{Items: []T{}, Size: DefaultPageSize},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = observable.New(c.st.clone())
	return c
}

func (c *Controller[T]) Name() string {
	return c.name
}

func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

func (c *Controller[T]) Subscribe(fn func(State[T])) (cancel func()) {
	return c.state.Subscribe(fn)
}

// update applies fn under the lock and publishes the result. Snapshots are
// numbered under the lock so a slower publisher never overwrites a newer one.
func (c *Controller[T]) update(fn func(st *State[T])) {
	c.mu.Lock()
	fn(&c.st)
	c.ver++
	ver, snap := c.ver, c.st.clone()
	c.mu.Unlock()
	c.state.Publish(ver, snap)
}

func (c *Controller[T]) query() model.PageQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.PageQuery{Page: c.st.Page, Size: c.st.Size, Keyword: c.st.Keyword}
}

// Load fetches one page. On failure the previous page stays as it was.
func (c *Controller[T]) Load(ctx context.Context, q model.PageQuery) error {
	if q.Size <= 0 {
		q.Size = c.query().Size
	}
	if q.Page < 0 {
		q.Page = 0
	}
	q.Keyword = strings.TrimSpace(q.Keyword)

	c.update(func(st *State[T]) { st.Loading = true })
	page, err := c.ops.List(ctx, q)
	if err != nil {
		c.log.Error("load", zap.Int("page", q.Page), zap.String("keyword", q.Keyword), zap.Error(err))
		c.update(func(st *State[T]) {
			st.Loading = false
			st.Err = errs.Failed("loading "+c.name, err)
		})
		return err
	}

	c.update(func(st *State[T]) {
		st.Loading = false
		st.Err = ""
		st.Items = page.Content
		if st.Items == nil || page.TotalPages == 0 {
			st.Items = []T{}
		}
		st.Page = page.Number
		st.Size = q.Size
		if page.Size > 0 {
			st.Size = page.Size
		}
		st.TotalPages = page.TotalPages
		st.TotalElements = page.TotalElements
		st.Keyword = q.Keyword
	})
	return nil
}

func (c *Controller[T]) Reload(ctx context.Context) error {
	return c.Load(ctx, c.query())
}

// Search restarts from the first page; an empty keyword drops the filter.
func (c *Controller[T]) Search(ctx context.Context, keyword string) error {
	q := c.query()
	q.Page, q.Keyword = 0, keyword
	return c.Load(ctx, q)
}

// GoToPage ignores pages outside [0, TotalPages).
func (c *Controller[T]) GoToPage(ctx context.Context, n int) error {
	c.mu.Lock()
	inRange := n >= 0 && n < c.st.TotalPages
	c.mu.Unlock()
	if !inRange {
		return nil
	}
	q := c.query()
	q.Page = n
	return c.Load(ctx, q)
}

func (c *Controller[T]) NextPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.query().Page+1)
}

func (c *Controller[T]) PrevPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.query().Page-1)
}

// StartEdit fills the edit buffer with a deep copy of item.
func (c *Controller[T]) StartEdit(item T) error {
	var buf T
	if err := copier.CopyWithOption(&buf, &item, copier.Option{DeepCopy: true}); err != nil {
		return errors.Wrap(err, "copy item")
	}
	c.update(func(st *State[T]) {
		st.Edit = &buf
		st.Message = ""
	})
	return nil
}

func (c *Controller[T]) CancelEdit() {
	c.update(func(st *State[T]) { st.Edit = nil })
}

func (c *Controller[T]) Editing() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Edit == nil {
		var zero T
		return zero, false
	}
	return *c.st.Edit, true
}

// Save sends edits and reloads the current page. Without an edit in
// progress it does nothing.
func (c *Controller[T]) Save(ctx context.Context, edits T) error {
	if _, editing := c.Editing(); !editing {
		return nil
	}
	if c.ops.Update == nil {
		return errs.Invalid(c.name, errs.ErrReadOnly.Error())
	}
	if err := c.ops.Update(ctx, edits); err != nil {
		c.log.Error("update", zap.String("item", c.describe(edits)), zap.Error(err))
		c.update(func(st *State[T]) { st.Err = errs.Failed("update "+c.name, err) })
		return err
	}
	c.update(func(st *State[T]) {
		st.Edit = nil
		st.Err = ""
		st.Message = fmt.Sprintf("%s updated", c.describe(edits))
	})
	return c.Reload(ctx)
}

// Remove asks for confirmation, deletes item and reloads the current page.
// The page index is kept even when the reload comes back past the last
// page. A declined confirmation returns false and sends nothing.
func (c *Controller[T]) Remove(ctx context.Context, item T) (bool, error) {
	if c.ops.Delete == nil {
		return false, errs.Invalid(c.name, errs.ErrReadOnly.Error())
	}
	what := c.describe(item)
	ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("Delete %s?", what))
	if err != nil || !ok {
		return false, err
	}
	if err := c.ops.Delete(ctx, item); err != nil {
		c.log.Error("delete", zap.String("item", what), zap.Error(err))
		c.update(func(st *State[T]) { st.Err = errs.Failed("delete "+c.name, err) })
		return false, err
	}
	c.update(func(st *State[T]) {
		st.Err = ""
		st.Message = what + " deleted"
	})
	return true, c.Reload(ctx)
}

func (c *Controller[T]) describe(item T) string {
	if c.ops.Describe != nil {
		return c.ops.Describe(item)
	}
	return "this " + c.name
}
