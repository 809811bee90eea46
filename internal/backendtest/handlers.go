package backendtest

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zgs/booking-client/internal/model"
)

// paginate follows the Spring semantics: an out of range page is empty but
// still reports the requested number and the real totals.
func paginate[T any](items []T, c echo.Context) model.Page[T] {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	total := len(items)
	p := model.Page[T]{
		Content:       []T{},
		TotalElements: total,
		TotalPages:    int(math.Ceil(float64(total) / float64(size))),
		Size:          size,
		Number:        page,
	}
	from := page * size
	if from < total {
		to := from + size
		if to > total {
			to = total
		}
		p.Content = append(p.Content, items[from:to]...)
	}
	return p
}

func filter[T any](items []T, keyword string, text func(T) string) []T {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if kw == "" || strings.Contains(strings.ToLower(text(it)), kw) {
			out = append(out, it)
		}
	}
	return out
}

func remove[T any](items []T, id int64, idOf func(T) int64) ([]T, bool) {
	for i, it := range items {
		if idOf(it) == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"status":  http.StatusBadRequest,
		"error":   "Bad Request",
		"message": message,
	})
}

func notFound(c echo.Context, what string) error {
	return fail(c, http.StatusNotFound, what+" not found")
}

// auth

func (b *Backend) login(c echo.Context) error {
	username, password := c.FormValue("username"), c.FormValue("password")
	b.mu.Lock()
	acc, found := b.accounts[username]
	if !found || acc.password != password {
		b.mu.Unlock()
		return fail(c, http.StatusUnauthorized, "invalid username or password")
	}
	sid := newSessionID()
	b.sessions[sid] = username
	roles := make([]string, 0, len(acc.user.RoleNames))
	for _, r := range acc.user.RoleNames {
		if !strings.HasPrefix(r, "ROLE_") {
			r = "ROLE_" + r
		}
		roles = append(roles, r)
	}
	b.mu.Unlock()

	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: sid, Path: "/", HttpOnly: true})
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"message":  "login successful",
		"username": username,
		"roles":    roles,
	})
}

func (b *Backend) logoutHandler(c echo.Context) error {
	b.mu.Lock()
	f := b.logout
	if ck, err := c.Cookie(sessionCookie); err == nil {
		delete(b.sessions, ck.Value)
	}
	b.mu.Unlock()
	if f != nil {
		return c.String(f.status, "logout unavailable")
	}
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	return ok(c, nil)
}

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Password string `json:"password"`
}

func (b *Backend) register(c echo.Context) error {
	var req registerBody
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password are required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.accounts[req.Username]; taken {
		return c.JSON(http.StatusOK, map[string]any{"success": false, "message": "username already exists"})
	}
	u := model.User{ID: b.id(), Username: req.Username, Email: req.Email, Fullname: req.Fullname, RoleNames: []string{"USER"}}
	b.accounts[req.Username] = &account{user: u, password: req.Password}
	return ok(c, u)
}

// users

func (b *Backend) me(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.accounts[current(c)].user)
}

func (b *Backend) updateMe(c echo.Context) error {
	var req model.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.accounts[current(c)]
	applyUser(&acc.user, req, false)
	return c.JSON(http.StatusOK, acc.user)
}

func (b *Backend) updatePassword(c echo.Context) error {
	var req model.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.accounts[current(c)]
	if acc.password != req.OldPassword {
		return badRequest(c, "current password is incorrect")
	}
	acc.password = req.NewPassword
	return ok(c, nil)
}

func applyUser(u *model.User, req model.UpdateUserRequest, roles bool) {
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Fullname != "" {
		u.Fullname = req.Fullname
	}
	if roles && len(req.RoleNames) > 0 {
		u.RoleNames = req.RoleNames
	}
}

func (b *Backend) sortedUsers() []model.User {
	out := make([]model.User, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) pagedUsers(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := filter(b.sortedUsers(), c.QueryParam("keyword"), func(u model.User) string {
		return u.Username + " " + u.Email + " " + u.Fullname
	})
	return c.JSON(http.StatusOK, paginate(list, c))
}

func (b *Backend) userByID(id int64) *account {
	for _, a := range b.accounts {
		if a.user.ID == id {
			return a
		}
	}
	return nil
}

func (b *Backend) listUsers(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.sortedUsers())
}

func (b *Backend) getUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.userByID(id)
	if acc == nil {
		return notFound(c, "user")
	}
	return c.JSON(http.StatusOK, acc.user)
}

func (b *Backend) updateUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.userByID(id)
	if acc == nil {
		return notFound(c, "user")
	}
	applyUser(&acc.user, req, true)
	return c.JSON(http.StatusOK, acc.user)
}

func (b *Backend) deleteUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.userByID(id)
	if acc == nil {
		return notFound(c, "user")
	}
	delete(b.accounts, acc.user.Username)
	return ok(c, nil)
}

// rooms

func roomID(r model.Room) int64 { return r.ID }

func (b *Backend) listRooms(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ok(c, append([]model.Room{}, b.rooms...))
}

func (b *Backend) pagedRooms(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := filter(b.rooms, c.QueryParam("keyword"), func(r model.Room) string { return r.Name + " " + r.Type })
	return c.JSON(http.StatusOK, paginate(list, c))
}

func (b *Backend) roomByID(id int64) *model.Room {
	for i := range b.rooms {
		if b.rooms[i].ID == id {
			return &b.rooms[i]
		}
	}
	return nil
}

func (b *Backend) getRoom(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.roomByID(id)
	if r == nil {
		return notFound(c, "room")
	}
	return ok(c, *r)
}

func (b *Backend) createRoom(c echo.Context) error {
	var r model.Room
	if err := c.Bind(&r); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r.ID = b.id()
	b.rooms = append(b.rooms, r)
	return ok(c, r)
}

func (b *Backend) updateRoom(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var r model.Room
	if err := c.Bind(&r); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.roomByID(id)
	if cur == nil {
		return notFound(c, "room")
	}
	r.ID = id
	*cur = r
	return ok(c, r)
}

func (b *Backend) deleteRoom(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var found bool
	if b.rooms, found = remove(b.rooms, id, roomID); !found {
		return notFound(c, "room")
	}
	return ok(c, nil)
}

// products

func productID(p model.Product) int64 { return p.ID }

func (b *Backend) listProducts(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, append([]model.Product{}, b.products...))
}

func (b *Backend) pagedProducts(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := filter(b.products, c.QueryParam("keyword"), func(p model.Product) string { return p.Name + " " + p.Description })
	return c.JSON(http.StatusOK, paginate(list, c))
}

func (b *Backend) productByID(id int64) *model.Product {
	for i := range b.products {
		if b.products[i].ID == id {
			return &b.products[i]
		}
	}
	return nil
}

func (b *Backend) getProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.productByID(id)
	if p == nil {
		return notFound(c, "product")
	}
	return c.JSON(http.StatusOK, *p)
}

func (b *Backend) createProduct(c echo.Context) error {
	var p model.Product
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = b.id()
	b.products = append(b.products, p)
	return c.JSON(http.StatusOK, p)
}

func (b *Backend) updateProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var p model.Product
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.productByID(id)
	if cur == nil {
		return notFound(c, "product")
	}
	p.ID = id
	*cur = p
	return c.JSON(http.StatusOK, p)
}

func (b *Backend) deleteProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var found bool
	if b.products, found = remove(b.products, id, productID); !found {
		return notFound(c, "product")
	}
	return ok(c, nil)
}

// bookings

func bookingID(bk model.Booking) int64 { return bk.ID }

func (b *Backend) myBookings(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	name := current(c)
	out := make([]model.Booking, 0)
	for _, bk := range b.bookings {
		if bk.Username == name {
			out = append(out, bk)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) createBooking(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	room := b.roomByID(id)
	if room == nil {
		return notFound(c, "room")
	}
	if !req.CheckOut.After(req.CheckIn.Time) {
		return badRequest(c, "check-out must be after check-in")
	}
	acc := b.accounts[current(c)]
	nights := int(req.CheckOut.Sub(req.CheckIn.Time).Hours() / 24)
	bk := model.Booking{
		ID:         b.id(),
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalPrice: room.Price * float64(nights),
		Status:     model.BookingPending,
		UserID:     acc.user.ID,
		RoomID:     room.ID,
		RoomName:   room.Name,
		Username:   acc.user.Username,
	}
	if req.GuestCount != nil {
		bk.GuestCount = *req.GuestCount
	}
	b.bookings = append(b.bookings, bk)
	return c.JSON(http.StatusOK, bk)
}

func (b *Backend) bookingByID(id int64) *model.Booking {
	for i := range b.bookings {
		if b.bookings[i].ID == id {
			return &b.bookings[i]
		}
	}
	return nil
}

func (b *Backend) cancelBooking(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bk := b.bookingByID(id)
	if bk == nil || bk.Username != current(c) {
		return notFound(c, "booking")
	}
	if bk.Status == model.BookingCancelled {
		return badRequest(c, "booking already cancelled")
	}
	bk.Status = model.BookingCancelled
	return ok(c, nil)
}

func (b *Backend) pagedBookings(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := filter(b.bookings, c.QueryParam("keyword"), func(bk model.Booking) string { return bk.Username + " " + bk.RoomName })
	return c.JSON(http.StatusOK, paginate(list, c))
}

func (b *Backend) bookingStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	if !model.BookingStatus(req.Status).Valid() {
		return badRequest(c, "unknown status "+req.Status)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bk := b.bookingByID(id)
	if bk == nil {
		return notFound(c, "booking")
	}
	bk.Status = model.BookingStatus(req.Status)
	return c.JSON(http.StatusOK, *bk)
}

func (b *Backend) deleteBooking(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var found bool
	if b.bookings, found = remove(b.bookings, id, bookingID); !found {
		return notFound(c, "booking")
	}
	return ok(c, nil)
}

// cart, answered with the {status, data} envelope

func cartOK(c echo.Context, cart model.Cart) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "success", "data": cart})
}

func (b *Backend) cartOf(username string) *model.Cart {
	cart, found := b.carts[username]
	if !found {
		cart = &model.Cart{ID: b.id(), Username: username, Items: []model.CartItem{}}
		if acc := b.accounts[username]; acc != nil {
			cart.UserID = acc.user.ID
		}
		b.carts[username] = cart
	}
	return cart
}

func (b *Backend) recount(cart *model.Cart) {
	cart.TotalPrice, cart.TotalItems = 0, 0
	for i := range cart.Items {
		it := &cart.Items[i]
		it.Subtotal = it.ProductPrice * float64(it.Quantity)
		cart.TotalPrice += it.Subtotal
		cart.TotalItems += it.Quantity
	}
}

func (b *Backend) getCart(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cartOK(c, *b.cartOf(current(c)))
}

func (b *Backend) addToCart(c echo.Context) error {
	var req model.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.productByID(req.ProductID)
	if p == nil {
		return notFound(c, "product")
	}
	cart := b.cartOf(current(c))
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == p.ID {
			cart.Items[i].Quantity += req.Quantity
			merged = true
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			ID:           b.id(),
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductPrice: float64(p.Price),
			Quantity:     req.Quantity,
		})
	}
	b.recount(cart)
	return cartOK(c, *cart)
}

func (b *Backend) updateCartItem(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cart := b.cartOf(current(c))
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			cart.Items[i].Quantity = req.Quantity
			b.recount(cart)
			return cartOK(c, *cart)
		}
	}
	return notFound(c, "cart item")
}

func (b *Backend) removeCartItem(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cart := b.cartOf(current(c))
	var found bool
	if cart.Items, found = remove(cart.Items, id, func(it model.CartItem) int64 { return it.ID }); !found {
		return notFound(c, "cart item")
	}
	b.recount(cart)
	return cartOK(c, *cart)
}

func (b *Backend) clearCart(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cart := b.cartOf(current(c))
	cart.Items = []model.CartItem{}
	b.recount(cart)
	return c.JSON(http.StatusOK, map[string]any{"status": "success", "message": "cart cleared"})
}

func (b *Backend) allCarts(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Cart, 0, len(b.carts))
	for _, cart := range b.carts {
		out = append(out, *cart)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, map[string]any{"status": "success", "data": out})
}

func (b *Backend) clearUserCart(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.userByID(id)
	if acc == nil {
		return notFound(c, "user")
	}
	cart := b.cartOf(acc.user.Username)
	cart.Items = []model.CartItem{}
	b.recount(cart)
	return c.JSON(http.StatusOK, map[string]any{"status": "success", "message": "user cart cleared"})
}

// orders

func orderID(o model.Order) int64 { return o.ID }

func (b *Backend) checkout(c echo.Context) error {
	var req model.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	name := current(c)
	cart := b.cartOf(name)
	if len(cart.Items) == 0 {
		return badRequest(c, "cart is empty")
	}
	o := model.Order{
		ID:              b.id(),
		UserID:          cart.UserID,
		Username:        name,
		TotalPrice:      cart.TotalPrice,
		TotalItems:      cart.TotalItems,
		Status:          model.OrderPending,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Note:            req.Note,
	}
	for _, it := range cart.Items {
		o.Items = append(o.Items, model.OrderItem{
			ID:           b.id(),
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductPrice: it.ProductPrice,
			Quantity:     it.Quantity,
			Subtotal:     it.Subtotal,
		})
	}
	b.orders = append(b.orders, o)
	cart.Items = []model.CartItem{}
	b.recount(cart)
	return ok(c, o)
}

func (b *Backend) myOrders(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	name := current(c)
	out := make([]model.Order, 0)
	for _, o := range b.orders {
		if o.Username == name {
			out = append(out, o)
		}
	}
	return ok(c, out)
}

func (b *Backend) pagedOrders(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := filter(b.orders, c.QueryParam("keyword"), func(o model.Order) string {
		return o.Username + " " + o.ShippingAddress + " " + o.PhoneNumber
	})
	return ok(c, paginate(list, c))
}

func (b *Backend) orderByID(id int64) *model.Order {
	for i := range b.orders {
		if b.orders[i].ID == id {
			return &b.orders[i]
		}
	}
	return nil
}

func (b *Backend) orderStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	if !model.OrderStatus(req.Status).Valid() {
		return badRequest(c, "unknown status "+req.Status)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	o := b.orderByID(id)
	if o == nil {
		return notFound(c, "order")
	}
	o.Status = model.OrderStatus(req.Status)
	return ok(c, *o)
}

func (b *Backend) cancelOrder(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	o := b.orderByID(id)
	if o == nil || o.Username != current(c) {
		return notFound(c, "order")
	}
	o.Status = model.OrderCancelled
	return ok(c, *o)
}

func (b *Backend) deleteOrder(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var found bool
	if b.orders, found = remove(b.orders, id, orderID); !found {
		return notFound(c, "order")
	}
	return ok(c, nil)
}

// reviews

func reviewID(r model.Review) int64 { return r.ID }

func (b *Backend) reviewsFor(match func(model.Review) bool) []model.Review {
	out := make([]model.Review, 0)
	for _, r := range b.reviews {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) productReviews(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.reviewsFor(func(r model.Review) bool { return r.ProductID != nil && *r.ProductID == id }))
}

func (b *Backend) roomReviews(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.reviewsFor(func(r model.Review) bool { return r.RoomID != nil && *r.RoomID == id }))
}

func (b *Backend) createReview(c echo.Context, attach func(*model.Review, int64) bool) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return badRequest(c, "rating must be between 1 and 5")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.accounts[current(c)]
	r := model.Review{ID: b.id(), Rating: req.Rating, Comment: req.Comment, Username: acc.user.Username, UserID: acc.user.ID}
	if !attach(&r, id) {
		return notFound(c, "review target")
	}
	b.reviews = append(b.reviews, r)
	return c.JSON(http.StatusOK, r)
}

func (b *Backend) createProductReview(c echo.Context) error {
	return b.createReview(c, func(r *model.Review, id int64) bool {
		r.ProductID = &id
		return b.productByID(id) != nil
	})
}

func (b *Backend) createRoomReview(c echo.Context) error {
	return b.createReview(c, func(r *model.Review, id int64) bool {
		r.RoomID = &id
		return b.roomByID(id) != nil
	})
}

func (b *Backend) deleteReview(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.accounts[current(c)]
	for _, r := range b.reviews {
		if r.ID == id && r.Username != acc.user.Username && !isAdmin(acc) {
			return fail(c, http.StatusForbidden, "you can only delete your own reviews")
		}
	}
	var found bool
	if b.reviews, found = remove(b.reviews, id, reviewID); !found {
		return notFound(c, "review")
	}
	return ok(c, nil)
}

// contact

func contactID(ct model.Contact) int64 { return ct.ID }

func (b *Backend) sendContact(c echo.Context) error {
	var ct model.Contact
	if err := c.Bind(&ct); err != nil {
		return badRequest(c, "malformed body")
	}
	if ct.Email == "" || ct.Message == "" {
		return badRequest(c, "email and message are required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	ct.ID = b.id()
	b.contacts = append(b.contacts, ct)
	return ok(c, ct)
}

func (b *Backend) pagedContacts(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := filter(b.contacts, c.QueryParam("keyword"), func(ct model.Contact) string {
		return ct.Name + " " + ct.Email + " " + ct.Message
	})
	return ok(c, paginate(list, c))
}

func (b *Backend) deleteContact(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var found bool
	if b.contacts, found = remove(b.contacts, id, contactID); !found {
		return notFound(c, "contact")
	}
	return ok(c, nil)
}
