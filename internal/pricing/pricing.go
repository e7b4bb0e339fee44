// Package pricing computes order totals and resolves discount precedence.
// All amounts are whole rupees; discounts never stack.
package pricing

import (
	"math"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

type Promo struct {
	ID                 int64   `json:"id"`
	Code               string  `json:"code"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

type GlobalDiscount struct {
	Percentage float64 `json:"percentage"`
	IsActive   bool    `json:"isActive"`
}

// Input is everything the engine reads at order-creation time. Promo and
// Global are nil when absent; an unknown or inactive promo code is passed as
// nil and simply not applied.
type Input struct {
	Subtotal  float64
	Tax       float64
	OrderType order.OrderType
	AreaFee   float64
	Promo     *Promo
	Global    *GlobalDiscount
}

// Quote is the finalized financial breakdown persisted on the order.
// Exactly one of the promo/global pairs is non-zero.
type Quote struct {
	Subtotal                 float64
	Tax                      float64
	DeliveryFee              float64
	Discount                 float64
	PromoCode                string
	PromoDiscount            float64
	PromoDiscountPercentage  float64
	GlobalDiscount           float64
	GlobalDiscountPercentage float64
	Total                    float64
}

// Round rounds to the whole-rupee convention used throughout.
func Round(v float64) float64 {
	return math.Round(v)
}

// LineTotal prices a canonical line: variation price (when chosen) replaces
// the base price and is multiplied by quantity; extras and side orders are
// flat per-line additions, not multiplied.
func LineTotal(item order.Item) float64 {
	unit := item.Price
	if item.SelectedVariation != nil {
		unit = item.SelectedVariation.Price
	}
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	total := unit * float64(qty)
	for _, extra := range item.SelectedExtras {
		total += extra.Price
	}
	for _, side := range item.SelectedSideOrders {
		total += side.Price
	}
	return Round(total)
}

// Subtotal sums the line totals of the canonical items.
func Subtotal(items []order.Item) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += LineTotal(item)
	}
	return Round(subtotal)
}

// Compute resolves the discount and the final total. When both a global
// discount and a promo code could apply, only the larger absolute amount is
// taken; the promo wins ties. The delivery fee applies to delivery orders
// only.
func Compute(in Input) Quote {
	q := Quote{
		Subtotal: Round(in.Subtotal),
		Tax:      Round(in.Tax),
	}

	if in.OrderType == order.TypeDelivery {
		q.DeliveryFee = Round(in.AreaFee)
	}

	var promoAmount, globalAmount float64
	if in.Promo != nil && in.Promo.DiscountPercentage >= 1 && in.Promo.DiscountPercentage <= 100 {
		promoAmount = Round(q.Subtotal * in.Promo.DiscountPercentage / 100)
	}
	if in.Global != nil && in.Global.IsActive && in.Global.Percentage > 0 && in.Global.Percentage <= 100 {
		globalAmount = Round(q.Subtotal * in.Global.Percentage / 100)
	}

	switch {
	case promoAmount > 0 && promoAmount >= globalAmount:
		q.Discount = promoAmount
		q.PromoCode = in.Promo.Code
		q.PromoDiscount = promoAmount
		q.PromoDiscountPercentage = in.Promo.DiscountPercentage
	case globalAmount > 0:
		q.Discount = globalAmount
		q.GlobalDiscount = globalAmount
		q.GlobalDiscountPercentage = in.Global.Percentage
	}

	q.Total = Round(math.Max(0, q.Subtotal-q.Discount+q.Tax+q.DeliveryFee))
	return q
}

// ImpliedDeliveryFee back-calculates a delivery fee for legacy orders that
// never persisted one: total - (subtotal - discount + tax), clamped to >= 0.
// This is a documented best-effort estimate for pre-existing data, not a
// recomputation; every order created by this service persists the explicit
// fee.
func ImpliedDeliveryFee(total, subtotal, discount, tax float64) float64 {
	fee := total - (subtotal - discount + tax)
	if fee < 0 {
		return 0
	}
	return Round(fee)
}

// DeliveryFeeOf returns an order's delivery fee, falling back to the implied
// estimate when the explicit field was never persisted.
func DeliveryFeeOf(o *order.Order) float64 {
	if o.DeliveryFee > 0 || o.OrderType != order.TypeDelivery {
		return o.DeliveryFee
	}
	return ImpliedDeliveryFee(o.Total, o.Subtotal, o.Discount, o.Tax)
}
