package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/zgs/booking-client/internal/model"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func optInt(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func printRooms(w io.Writer, list []model.Room) {
	tw := newTable(w, "ID", "NAME", "TYPE", "PRICE", "CAPACITY", "AVAILABLE")
	for _, r := range list {
		avail := "-"
		if r.Available != nil {
			avail = strconv.FormatBool(*r.Available)
		}
		row(tw, r.ID, r.Name, r.Type, fmt.Sprintf("%.2f", r.Price), optInt(r.Capacity), avail)
	}
	tw.Flush()
}

func printProducts(w io.Writer, list []model.Product) {
	tw := newTable(w, "ID", "NAME", "PRICE", "STOCK")
	for _, p := range list {
		row(tw, p.ID, p.Name, p.Price, optInt(p.Stock))
	}
	tw.Flush()
}

func printCart(w io.Writer, c model.Cart) {
	if len(c.Items) == 0 {
		fmt.Fprintln(w, "your cart is empty")
		return
	}
	tw := newTable(w, "ITEM", "PRODUCT", "PRICE", "QTY", "SUBTOTAL")
	for _, it := range c.Items {
		row(tw, it.ID, it.ProductName, fmt.Sprintf("%.2f", it.ProductPrice), it.Quantity, fmt.Sprintf("%.2f", it.Subtotal))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d items, total %.2f\n", c.TotalItems, c.TotalPrice)
}

func printBookings(w io.Writer, list []model.Booking) {
	tw := newTable(w, "ID", "ROOM", "GUEST", "CHECK-IN", "CHECK-OUT", "TOTAL", "STATUS")
	for _, b := range list {
		row(tw, b.ID, b.RoomName, b.Username, b.CheckIn, b.CheckOut, fmt.Sprintf("%.2f", b.TotalPrice), b.Status.Label())
	}
	tw.Flush()
}

func printOrders(w io.Writer, list []model.Order) {
	tw := newTable(w, "ID", "USER", "ITEMS", "TOTAL", "ADDRESS", "STATUS")
	for _, o := range list {
		row(tw, o.ID, o.Username, o.TotalItems, fmt.Sprintf("%.2f", o.TotalPrice), o.ShippingAddress, o.Status.Label())
	}
	tw.Flush()
}

func printUsers(w io.Writer, list []model.User) {
	tw := newTable(w, "ID", "USERNAME", "EMAIL", "NAME", "ROLES")
	for _, u := range list {
		row(tw, u.ID, u.Username, u.Email, u.Fullname, strings.Join(u.RoleNames, ","))
	}
	tw.Flush()
}

func printContacts(w io.Writer, list []model.Contact) {
	tw := newTable(w, "ID", "NAME", "EMAIL", "MESSAGE")
	for _, c := range list {
		row(tw, c.ID, c.Name, c.Email, c.Message)
	}
	tw.Flush()
}

func printReviews(w io.Writer, list []model.Review, average float64, canDelete func(model.Review) bool) {
	if len(list) == 0 {
		fmt.Fprintln(w, "no reviews yet")
		return
	}
	tw := newTable(w, "ID", "BY", "RATING", "COMMENT", "")
	for _, r := range list {
		mark := ""
		if canDelete(r) {
			mark = "(deletable)"
		}
		row(tw, r.ID, r.Username, strings.Repeat("*", r.Rating), r.Comment, mark)
	}
	tw.Flush()
	fmt.Fprintf(w, "average %.1f from %d reviews\n", average, len(list))
}
