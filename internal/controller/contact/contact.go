// Package contact sends the public contact form.
package contact

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	contactsvc "github.com/zgs/booking-client/internal/service/contact"
	"github.com/zgs/booking-client/pkg/validate"
)

var _ ContactService = (*contactsvc.Service)(nil)

type ContactService interface {
	Send(ctx context.Context, c model.Contact) (model.Contact, error)
}

type State struct {
	Form    model.Contact
	Err     string
	Message string
}

type Controller struct {
	log      *zap.Logger
	svc      ContactService
	validate *validate.CustomValidator

	mu sync.Mutex
	st State
}

func New(log *zap.Logger, svc ContactService) *Controller {
	return &Controller{
		log:      log.Named("contact"),
		svc:      svc,
		validate: validate.NewCustomValidator(),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

// Send keeps the form on failure and clears it once the server accepted it.
func (c *Controller) Send(ctx context.Context, form model.Contact) error {
	form = model.Contact{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Phone:   strings.TrimSpace(form.Phone),
		Message: strings.TrimSpace(form.Message),
	}
	c.mu.Lock()
	c.st.Form = form
	c.mu.Unlock()

	if err := c.validate.Validate(form); err != nil {
		return errs.FromValidator(err)
	}
	if _, err := c.svc.Send(ctx, form); err != nil {
		c.log.Error("send", zap.String("email", form.Email), zap.Error(err))
		c.mu.Lock()
		c.st.Err = errs.Failed("sending message", err)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.st = State{Message: "thank you, we will get back to you soon"}
	return nil
}
