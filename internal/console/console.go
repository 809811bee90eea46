// Package console is a line oriented front end over the controllers.
package console

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zgs/booking-client/internal/controller/booking"
	"github.com/zgs/booking-client/internal/controller/cart"
	"github.com/zgs/booking-client/internal/controller/contact"
	"github.com/zgs/booking-client/internal/controller/dashboard"
	"github.com/zgs/booking-client/internal/controller/profile"
	"github.com/zgs/booking-client/internal/controller/review"
	"github.com/zgs/booking-client/internal/errs"
	"github.com/zgs/booking-client/internal/model"
	"github.com/zgs/booking-client/internal/service/product"
	"github.com/zgs/booking-client/internal/service/room"
	"github.com/zgs/booking-client/internal/session"
)

type Deps struct {
	Session   *session.Store
	Rooms     *room.Service
	Products  *product.Service
	Cart      *cart.Controller
	Bookings  *booking.Controller
	Reviews   *review.Controller
	Profile   *profile.Controller
	Contact   *contact.Controller
	Dashboard *dashboard.Dashboard
}

type Console struct {
	log    *zap.Logger
	prompt *Prompt
	deps   Deps
}

func New(log *zap.Logger, prompt *Prompt, deps Deps) *Console {
	return &Console{
		log:    log.Named("console"),
		prompt: prompt,
		deps:   deps,
	}
}

type handlerFunc func(ctx context.Context, args []string) error

var errUsage = errors.New("usage")

// Run reads commands until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.prompt.Printf("type \"help\" for the list of commands\n")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := c.prompt.ReadLine(c.ps1())
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		c.Exec(ctx, line)
	}
}

func (c *Console) ps1() string {
	if name := c.deps.Session.Username(); name != "" {
		return name + "> "
	}
	return "> "
}

// Exec runs a single command line and prints its outcome.
func (c *Console) Exec(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	h, ok := c.commands()[cmd]
	if !ok {
		c.prompt.Printf("unknown command %q, try \"help\"\n", cmd)
		return
	}
	err := h(ctx, args)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		c.prompt.Printf("usage: %s\n", usage[cmd])
	default:
		c.log.Debug("command failed", zap.String("command", cmd), zap.Error(err))
		c.prompt.Printf("error: %s\n", errs.Display(err, "please try again later"))
	}
}

var usage = map[string]string{
	"login":    "login <username> <password>",
	"logout":   "logout",
	"register": "register <username> <email> <password> <confirm> <full name>",
	"whoami":   "whoami",
	"rooms":    "rooms",
	"products": "products",
	"cart":     "cart [add <productId> <qty> | set <itemId> <qty> | rm <itemId> | clear]",
	"checkout": "checkout <address>|<phone>|<note>",
	"bookings": "bookings",
	"book":     "book <roomId> <check-in> <check-out> [guests]",
	"cancel":   "cancel <bookingId>",
	"reviews":  "reviews product|room <id>",
	"review":   "review product|room <id> <rating> <comment>",
	"unreview": "unreview <reviewId>",
	"contact":  "contact <name>|<email>|<message>",
	"profile":  "profile [email <email> | name <full name>]",
	"passwd":   "passwd <current> <new> <confirm>",
	"admin":    "admin refresh | admin <users|bookings|products|rooms|orders|contacts> [page N|next|prev|search [kw]|delete <id>|status <id> <STATUS>]",
	"help":     "help",
	"quit":     "quit",
}

func (c *Console) commands() map[string]handlerFunc {
	return map[string]handlerFunc{
		"login":    c.login,
		"logout":   c.logout,
		"register": c.register,
		"whoami":   c.whoami,
		"rooms":    c.rooms,
		"products": c.products,
		"cart":     c.cart,
		"checkout": c.checkout,
		"bookings": c.bookings,
		"book":     c.book,
		"cancel":   c.cancel,
		"reviews":  c.reviews,
		"review":   c.review,
		"unreview": c.unreview,
		"contact":  c.contact,
		"profile":  c.profile,
		"passwd":   c.passwd,
		"admin":    c.admin,
		"help":     c.help,
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Invalid("id", "must be a positive number")
	}
	return id, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.Invalid(field, "must be a number")
	}
	return n, nil
}

// splitForm splits "a|b|c" into exactly n trimmed parts.
func splitForm(args []string, n int) []string {
	parts := strings.SplitN(strings.Join(args, " "), "|", n)
	for len(parts) < n {
		parts = append(parts, "")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (c *Console) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	st, err := c.deps.Session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	c.prompt.Printf("welcome, %s%s\n", st.Username, adminSuffix(st))
	return nil
}

func adminSuffix(st session.State) string {
	if st.Roles.Has(model.RoleAdmin) {
		return " (admin)"
	}
	return ""
}

func (c *Console) logout(ctx context.Context, _ []string) error {
	c.deps.Session.Logout(ctx)
	c.prompt.Printf("logged out\n")
	return nil
}

func (c *Console) register(ctx context.Context, args []string) error {
	if len(args) < 5 {
		return errUsage
	}
	st, err := c.deps.Session.RegisterAndLogin(ctx, model.RegisterRequest{
		Username:        args[0],
		Email:           args[1],
		Password:        args[2],
		ConfirmPassword: args[3],
		Fullname:        strings.Join(args[4:], " "),
	})
	if err != nil {
		return err
	}
	c.prompt.Printf("account created, welcome %s\n", st.Username)
	return nil
}

func (c *Console) whoami(_ context.Context, _ []string) error {
	st := c.deps.Session.State()
	if !st.LoggedIn {
		c.prompt.Printf("not logged in\n")
		return nil
	}
	roles := make([]string, 0, len(st.Roles))
	for _, r := range st.Roles.Slice() {
		roles = append(roles, r.String())
	}
	c.prompt.Printf("%s [%s]\n", st.Username, strings.Join(roles, ", "))
	return nil
}

func (c *Console) rooms(ctx context.Context, _ []string) error {
	list, err := c.deps.Rooms.All(ctx)
	if err != nil {
		return err
	}
	printRooms(c.prompt.Writer(), list)
	return nil
}

func (c *Console) products(ctx context.Context, _ []string) error {
	list, err := c.deps.Products.All(ctx)
	if err != nil {
		return err
	}
	printProducts(c.prompt.Writer(), list)
	return nil
}

func (c *Console) cart(ctx context.Context, args []string) error {
	ctl := c.deps.Cart
	var err error
	switch {
	case len(args) == 0:
		err = ctl.Load(ctx)
	case args[0] == "add" && len(args) == 3:
		err = c.withIDQty(args[1], args[2], func(id int64, qty int) error { return ctl.Add(ctx, id, qty) })
	case args[0] == "set" && len(args) == 3:
		err = c.withIDQty(args[1], args[2], func(id int64, qty int) error { return ctl.UpdateQuantity(ctx, id, qty) })
	case args[0] == "rm" && len(args) == 2:
		err = c.removeCartItem(ctx, args[1])
	case args[0] == "clear" && len(args) == 1:
		_, err = ctl.Clear(ctx)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	printCart(c.prompt.Writer(), ctl.State().Cart)
	return nil
}

func (c *Console) withIDQty(rawID, rawQty string, fn func(int64, int) error) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	qty, err := parseInt("quantity", rawQty)
	if err != nil {
		return err
	}
	return fn(id, qty)
}

func (c *Console) removeCartItem(ctx context.Context, raw string) error {
	id, err := parseID(raw)
	if err != nil {
		return err
	}
	for _, it := range c.deps.Cart.State().Cart.Items {
		if it.ID == id {
			_, err := c.deps.Cart.RemoveItem(ctx, it)
			return err
		}
	}
	return errs.Invalid("item", "not in the cart, run \"cart\" first")
}

func (c *Console) checkout(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	f := splitForm(args, 3)
	o, err := c.deps.Cart.Checkout(ctx, model.CheckoutRequest{ShippingAddress: f[0], PhoneNumber: f[1], Note: f[2]})
	if err != nil {
		return err
	}
	c.prompt.Printf("order #%d placed: %d items, total %.2f, status %s\n", o.ID, o.TotalItems, o.TotalPrice, o.Status.Label())
	return nil
}

func (c *Console) bookings(ctx context.Context, _ []string) error {
	if err := c.deps.Bookings.LoadMine(ctx); err != nil {
		return err
	}
	printBookings(c.prompt.Writer(), c.deps.Bookings.State().Bookings)
	return nil
}

func (c *Console) book(ctx context.Context, args []string) error {
	if len(args) != 3 && len(args) != 4 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	f := booking.Form{CheckIn: args[1], CheckOut: args[2]}
	if len(args) == 4 {
		if f.GuestCount, err = parseInt("guests", args[3]); err != nil {
			return err
		}
	}
	r, err := c.deps.Rooms.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := c.deps.Bookings.Book(ctx, r, f); err != nil {
		return err
	}
	c.prompt.Printf("%s\n", c.deps.Bookings.State().Message)
	return nil
}

func (c *Console) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := c.deps.Bookings.LoadMine(ctx); err != nil {
		return err
	}
	for _, b := range c.deps.Bookings.State().Bookings {
		if b.ID == id {
			ok, err := c.deps.Bookings.Cancel(ctx, b)
			if err == nil && ok {
				c.prompt.Printf("%s\n", c.deps.Bookings.State().Message)
			}
			return err
		}
	}
	return errs.Invalid("booking", "not found among your bookings")
}

func parseTarget(kind, raw string) (review.Target, error) {
	id, err := parseID(raw)
	if err != nil {
		return review.Target{}, err
	}
	switch kind {
	case "product":
		return review.Target{Kind: review.Product, ID: id}, nil
	case "room":
		return review.Target{Kind: review.Room, ID: id}, nil
	default:
		return review.Target{}, errUsage
	}
}

func (c *Console) reviews(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	t, err := parseTarget(args[0], args[1])
	if err != nil {
		return err
	}
	if err := c.deps.Reviews.Load(ctx, t); err != nil {
		return err
	}
	c.printReviews()
	return nil
}

func (c *Console) printReviews() {
	st := c.deps.Reviews.State()
	printReviews(c.prompt.Writer(), st.Reviews, st.Average, c.deps.Reviews.CanDelete)
}

func (c *Console) review(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return errUsage
	}
	t, err := parseTarget(args[0], args[1])
	if err != nil {
		return err
	}
	rating, err := parseInt("rating", args[2])
	if err != nil {
		return err
	}
	if err := c.deps.Reviews.Load(ctx, t); err != nil {
		return err
	}
	if err := c.deps.Reviews.Submit(ctx, rating, strings.Join(args[3:], " ")); err != nil {
		return err
	}
	c.printReviews()
	return nil
}

func (c *Console) unreview(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	for _, r := range c.deps.Reviews.State().Reviews {
		if r.ID != id {
			continue
		}
		if !c.deps.Reviews.CanDelete(r) {
			return errs.Invalid("review", "only its author or an admin can delete it")
		}
		if _, err := c.deps.Reviews.Delete(ctx, r); err != nil {
			return err
		}
		c.printReviews()
		return nil
	}
	return errs.Invalid("review", "not in the last listing, run \"reviews\" first")
}

func (c *Console) contact(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	f := splitForm(args, 3)
	if err := c.deps.Contact.Send(ctx, model.Contact{Name: f[0], Email: f[1], Message: f[2]}); err != nil {
		return err
	}
	c.prompt.Printf("%s\n", c.deps.Contact.State().Message)
	return nil
}

func (c *Console) profile(ctx context.Context, args []string) error {
	ctl := c.deps.Profile
	if err := ctl.Load(ctx); err != nil {
		return err
	}
	if len(args) > 0 {
		if len(args) < 2 {
			return errUsage
		}
		ctl.StartEdit()
		edit := *ctl.State().Edit
		value := strings.Join(args[1:], " ")
		switch args[0] {
		case "email":
			edit.Email = value
		case "name":
			edit.Fullname = value
		default:
			ctl.CancelEdit()
			return errUsage
		}
		if err := ctl.Save(ctx, edit); err != nil {
			ctl.CancelEdit()
			return err
		}
	}
	u := ctl.State().User
	c.prompt.Printf("username: %s\nemail:    %s\nname:     %s\n", u.Username, u.Email, u.Fullname)
	return nil
}

func (c *Console) passwd(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	if err := c.deps.Profile.ChangePassword(ctx, args[0], args[1], args[2]); err != nil {
		return err
	}
	c.prompt.Printf("%s\n", c.deps.Profile.State().Message)
	return nil
}

func (c *Console) help(_ context.Context, _ []string) error {
	for _, name := range []string{
		"login", "logout", "register", "whoami", "rooms", "products", "cart", "checkout",
		"bookings", "book", "cancel", "reviews", "review", "unreview", "contact", "profile",
		"passwd", "admin", "help", "quit",
	} {
		c.prompt.Printf("  %s\n", usage[name])
	}
	return nil
}
