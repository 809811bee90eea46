// Package backendtest runs an in-memory imitation of the booking REST
// backend on echo, for tests of the services and controllers.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zgs/booking-client/internal/model"
)

const sessionCookie = "JSESSIONID"

type account struct {
	user     model.User
	password string
}

type fault struct {
	status  int
	message string
}

type Backend struct {
	URL string

	mu       sync.Mutex
	nextID   int64
	accounts map[string]*account
	sessions map[string]string
	rooms    []model.Room
	products []model.Product
	bookings []model.Booking
	orders   []model.Order
	reviews  []model.Review
	contacts []model.Contact
	carts    map[string]*model.Cart
	hits     map[string]int
	faults   map[string]fault
	logout   *fault
}

func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		nextID:   100,
		accounts: map[string]*account{},
		sessions: map[string]string{},
		carts:    map[string]*model.Cart{},
		hits:     map[string]int{},
		faults:   map[string]fault{},
	}
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// Hits counts requests by route, e.g. "POST /api/cart/add".
func (b *Backend) Hits(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

// TotalHits counts every request received.
func (b *Backend) TotalHits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, v := range b.hits {
		n += v
	}
	return n
}

// Fail makes every later request to route answer status with message until
// Recover is called.
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[route] = fault{status: status, message: message}
}

func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.faults, route)
}

// FailLogout makes logout answer status with an arbitrary non-envelope body.
func (b *Backend) FailLogout(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logout = &fault{status: status}
}

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) AddUser(username, password string, roles ...string) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := model.User{
		ID:        b.id(),
		Username:  username,
		Email:     username + "@example.com",
		Fullname:  strings.ToUpper(username[:1]) + username[1:],
		RoleNames: roles,
	}
	b.accounts[username] = &account{user: u, password: password}
	return u
}

func (b *Backend) AddRoom(r model.Room) model.Room {
	b.mu.Lock()
	defer b.mu.Unlock()
	r.ID = b.id()
	b.rooms = append(b.rooms, r)
	return r
}

func (b *Backend) AddProduct(p model.Product) model.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = b.id()
	b.products = append(b.products, p)
	return p
}

func (b *Backend) AddBooking(bk model.Booking) model.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()
	bk.ID = b.id()
	if bk.Status == "" {
		bk.Status = model.BookingPending
	}
	b.bookings = append(b.bookings, bk)
	return bk
}

func (b *Backend) AddOrder(o model.Order) model.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	o.ID = b.id()
	if o.Status == "" {
		o.Status = model.OrderPending
	}
	b.orders = append(b.orders, o)
	return o
}

func (b *Backend) AddReview(r model.Review) model.Review {
	b.mu.Lock()
	defer b.mu.Unlock()
	r.ID = b.id()
	b.reviews = append(b.reviews, r)
	return r
}

func (b *Backend) AddContact(c model.Contact) model.Contact {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.ID = b.id()
	b.contacts = append(b.contacts, c)
	return c
}

func (b *Backend) Users() []model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.User, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, a.user)
	}
	return out
}

func (b *Backend) Bookings() []model.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Booking(nil), b.bookings...)
}

func (b *Backend) Orders() []model.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Order(nil), b.orders...)
}

func (b *Backend) Reviews() []model.Review {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Review(nil), b.reviews...)
}

func (b *Backend) Contacts() []model.Contact {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Contact(nil), b.contacts...)
}

func (b *Backend) Cart(username string) model.Cart {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.cartOf(username)
}

func (b *Backend) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(b.track)

	a := e.Group("/api/auth")
	a.POST("/login", b.login)
	a.POST("/logout", b.logoutHandler)
	a.POST("/register", b.register)

	u := e.Group("/api/users", b.authenticated)
	u.GET("/me", b.me)
	u.PUT("/me", b.updateMe)
	u.PUT("/me/password", b.updatePassword)
	u.GET("", b.listUsers, b.admin)
	u.GET("/paged", b.pagedUsers, b.admin)
	u.GET("/:id", b.getUser, b.admin)
	u.PUT("/:id", b.updateUser, b.admin)
	u.DELETE("/:id", b.deleteUser, b.admin)

	r := e.Group("/api/rooms")
	r.GET("", b.listRooms)
	r.GET("/paged", b.pagedRooms)
	r.GET("/:id", b.getRoom)
	r.POST("", b.createRoom, b.authenticated, b.admin)
	r.PUT("/:id", b.updateRoom, b.authenticated, b.admin)
	r.DELETE("/:id", b.deleteRoom, b.authenticated, b.admin)

	p := e.Group("/api/product")
	p.GET("", b.listProducts)
	p.GET("/paged", b.pagedProducts)
	p.GET("/:id", b.getProduct)
	p.POST("", b.createProduct, b.authenticated, b.admin)
	p.PUT("/:id", b.updateProduct, b.authenticated, b.admin)
	p.DELETE("/:id", b.deleteProduct, b.authenticated, b.admin)

	bk := e.Group("/api/bookings", b.authenticated)
	bk.GET("/my", b.myBookings)
	bk.POST("/room/:id", b.createBooking)
	bk.PUT("/:id/cancel", b.cancelBooking)
	bk.GET("/admin/all", b.pagedBookings, b.admin)
	bk.PUT("/admin/:id/status", b.bookingStatus, b.admin)
	bk.DELETE("/admin/:id", b.deleteBooking, b.admin)

	c := e.Group("/api/cart", b.authenticated)
	c.GET("", b.getCart)
	c.POST("/add", b.addToCart)
	c.PUT("/item/:id", b.updateCartItem)
	c.DELETE("/item/:id", b.removeCartItem)
	c.DELETE("/clear", b.clearCart)
	c.GET("/admin/all", b.allCarts, b.admin)
	c.DELETE("/admin/clear/:id", b.clearUserCart, b.admin)

	o := e.Group("/api/orders", b.authenticated)
	o.POST("/checkout", b.checkout)
	o.GET("/my-orders", b.myOrders)
	o.GET("/all", b.pagedOrders, b.admin)
	o.PUT("/:id/status", b.orderStatus, b.admin)
	o.PUT("/:id/cancel", b.cancelOrder)
	o.DELETE("/:id", b.deleteOrder, b.admin)

	rv := e.Group("/api/reviews")
	rv.GET("/product/:id", b.productReviews)
	rv.GET("/room/:id", b.roomReviews)
	rv.POST("/product/:id", b.createProductReview, b.authenticated)
	rv.POST("/room/:id", b.createRoomReview, b.authenticated)
	rv.DELETE("/:id", b.deleteReview, b.authenticated)

	ct := e.Group("/api/contact")
	ct.POST("", b.sendContact)
	ct.GET("/paged", b.pagedContacts, b.authenticated, b.admin)
	ct.DELETE("/:id", b.deleteContact, b.authenticated, b.admin)

	return e
}

func (b *Backend) track(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		route := c.Request().Method + " " + c.Path()
		b.mu.Lock()
		b.hits[route]++
		f, failing := b.faults[route]
		b.mu.Unlock()
		if failing {
			return fail(c, f.status, f.message)
		}
		return next(c)
	}
}

const userKey = "user"

func (b *Backend) authenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck, err := c.Cookie(sessionCookie)
		if err != nil {
			return fail(c, http.StatusUnauthorized, "please log in first")
		}
		b.mu.Lock()
		name, ok := b.sessions[ck.Value]
		acc := b.accounts[name]
		b.mu.Unlock()
		if !ok || acc == nil {
			return fail(c, http.StatusUnauthorized, "please log in first")
		}
		c.Set(userKey, name)
		return next(c)
	}
}

func (b *Backend) admin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		ok := isAdmin(b.accounts[current(c)])
		b.mu.Unlock()
		if !ok {
			return fail(c, http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}

func isAdmin(a *account) bool {
	if a == nil {
		return false
	}
	for _, r := range a.user.RoleNames {
		if r == "ADMIN" || r == "ROLE_ADMIN" {
			return true
		}
	}
	return false
}

func current(c echo.Context) string {
	name, _ := c.Get(userKey).(string)
	return name
}

func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "success", "data": data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{"success": false, "message": message})
}
