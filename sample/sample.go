// Package sample provides a small commerce object graph used by the
// command-line tool demos and as a realistic fixture: typed IDs, an
// enum leaf, accessor-backed properties and a cyclic referral link.
package sample

import (
	"reflect"

	"github.com/google/uuid"

	"beanpath/coerce"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPlaced  Status = "placed"
	StatusShipped Status = "shipped"
)

type Customer struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Address  Address
	Orders   []*Order
	Referrer *Customer

	balance int64
}

// Balance is the customer's store credit in cents.
func (c *Customer) Balance() int64     { return c.balance }
func (c *Customer) SetBalance(v int64) { c.balance = v }

type Address struct {
	Street string
	City   string
	Zip    string
}

type Order struct {
	ID     uuid.UUID
	Status Status
	Lines  []LineItem
	Tags   map[string]string
}

type LineItem struct {
	SKU   string
	Qty   int
	Price int64
}

func init() {
	coerce.Register(reflect.TypeFor[uuid.UUID](), func(text string) (any, error) {
		return uuid.Parse(text)
	})
}

// Graph builds a ready-made customer graph: two customers referring
// each other, one order with two lines.
func Graph() *Customer {
	ada := &Customer{
		ID:    uuid.MustParse("11111111-1111-4111-8111-111111111111"),
		Name:  "Ada",
		Email: "ada@example.com",
		Address: Address{
			Street: "1 Engine St",
			City:   "London",
			Zip:    "E1",
		},
	}
	bob := &Customer{
		ID:    uuid.MustParse("22222222-2222-4222-8222-222222222222"),
		Name:  "Bob",
		Email: "bob@example.com",
	}
	ada.Referrer, bob.Referrer = bob, ada

	ada.Orders = []*Order{{
		ID:     uuid.MustParse("33333333-3333-4333-8333-333333333333"),
		Status: StatusPlaced,
		Lines: []LineItem{
			{SKU: "gear-1", Qty: 2, Price: 1500},
			{SKU: "belt-9", Qty: 1, Price: 450},
		},
		Tags: map[string]string{"channel": "web"},
	}}
	ada.SetBalance(1200)

	return ada
}
