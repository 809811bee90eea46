package model

type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Fullname  string   `json:"fullname"`
	RoleNames []string `json:"roleNames,omitempty"`
}

type UpdateUserRequest struct {
	Email     string   `json:"email,omitempty" validate:"omitempty,email"`
	Fullname  string   `json:"fullname,omitempty"`
	RoleNames []string `json:"roleNames,omitempty"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"notblank"`
	Email           string `json:"email" validate:"notblank,email"`
	Fullname        string `json:"fullname" validate:"notblank"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

type LoginResult struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

type Booking struct {
	ID         int64         `json:"id,omitempty"`
	CheckIn    Date          `json:"checkIn"`
	CheckOut   Date          `json:"checkOut"`
	TotalPrice float64       `json:"totalPrice,omitempty"`
	Status     BookingStatus `json:"status,omitempty"`
	GuestCount int           `json:"guestCount,omitempty"`
	UserID     int64         `json:"userId,omitempty"`
	RoomID     int64         `json:"roomId,omitempty"`
	RoomName   string        `json:"roomName,omitempty"`
	Username   string        `json:"username,omitempty"`
}

type CreateBookingRequest struct {
	CheckIn    Date `json:"checkIn"`
	CheckOut   Date `json:"checkOut"`
	GuestCount *int `json:"guestCount,omitempty"`
}

type Product struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       int    `json:"price" validate:"gte=0"`
	Stock       *int   `json:"stock,omitempty"`
}

type Room struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name" validate:"notblank"`
	Type        string  `json:"type" validate:"notblank"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Capacity    *int    `json:"capacity,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type OrderItem struct {
	ID           int64   `json:"id,omitempty"`
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

type Order struct {
	ID              int64       `json:"id,omitempty"`
	UserID          int64       `json:"userId"`
	Username        string      `json:"username"`
	Items           []OrderItem `json:"items"`
	TotalPrice      float64     `json:"totalPrice"`
	TotalItems      int         `json:"totalItems"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	PhoneNumber     string      `json:"phoneNumber"`
	Note            string      `json:"note,omitempty"`
	CreatedAt       DateTime    `json:"createdAt,omitempty"`
	UpdatedAt       DateTime    `json:"updatedAt,omitempty"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"notblank"`
	PhoneNumber     string `json:"phoneNumber" validate:"notblank"`
	Note            string `json:"note"`
}

type Review struct {
	ID        int64    `json:"id,omitempty"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	Username  string   `json:"username,omitempty"`
	UserID    int64    `json:"userId,omitempty"`
	ProductID *int64   `json:"productId,omitempty"`
	RoomID    *int64   `json:"roomId,omitempty"`
	CreatedAt DateTime `json:"createdAt,omitempty"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"notblank"`
}

type Contact struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"notblank"`
}

type CartItem struct {
	ID                 int64   `json:"id"`
	ProductID          int64   `json:"productId"`
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription,omitempty"`
	ProductImageURL    string  `json:"productImageUrl,omitempty"`
	ProductPrice       float64 `json:"productPrice"`
	Quantity           int     `json:"quantity"`
	Subtotal           float64 `json:"subtotal"`
}

// Cart totals are computed by the server and never recomputed here.
type Cart struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	Username   string     `json:"username,omitempty"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
	TotalItems int        `json:"totalItems"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"min=1,max=99"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=99"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}
