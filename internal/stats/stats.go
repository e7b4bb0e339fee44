// Package stats derives per-period summaries from a bounded order
// collection. It is a pure read projection: nothing here mutates orders.
package stats

import (
	"sort"

	"github.com/ZainJ5/tipuburger-server/internal/area"
	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/pricing"
)

const (
	topItemsLimit  = 5
	topAreasLimit  = 5
	topPromosLimit = 10
)

type Financials struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type ItemStat struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type AreaStat struct {
	Area                  string  `json:"area"`
	Orders                int     `json:"orders"`
	AverageOrderValue     float64 `json:"averageOrderValue"`
	EstimatedDeliveryFees float64 `json:"estimatedDeliveryFees"`
}

type PromoStat struct {
	Code            string  `json:"code"`
	Uses            int     `json:"uses"`
	DiscountGranted float64 `json:"discountGranted"`
	NetRevenue      float64 `json:"netRevenue"`
}

type Summary struct {
	TotalOrders  int                  `json:"totalOrders"`
	StatusCounts map[order.Status]int `json:"statusCounts"`
	Financials   Financials           `json:"financials"`
	TopItems     []ItemStat           `json:"topItems"`
	TopAreas     []AreaStat           `json:"topAreas"`
	PromoUsage   []PromoStat          `json:"promoUsage"`
}

type Options struct {
	// ScopedToCancelled includes cancelled orders in the financial sums;
	// otherwise they only contribute to the status counts.
	ScopedToCancelled bool
}

// Aggregate summarizes the given orders. Cancelled orders are excluded from
// every revenue figure unless the view is explicitly scoped to them.
func Aggregate(orders []order.Order, opts Options) Summary {
	summary := Summary{
		StatusCounts: make(map[order.Status]int),
		TopItems:     []ItemStat{},
		TopAreas:     []AreaStat{},
		PromoUsage:   []PromoStat{},
	}

	items := make(map[string]*ItemStat)
	areas := make(map[string]*areaAccumulator)
	promos := make(map[string]*PromoStat)

	for i := range orders {
		o := &orders[i]
		summary.TotalOrders++
		summary.StatusCounts[o.Status]++

		if (o.Status == order.StatusCancel) != opts.ScopedToCancelled {
			continue
		}

		summary.Financials.Subtotal += o.Subtotal
		summary.Financials.Tax += o.Tax
		summary.Financials.Discount += o.Discount
		summary.Financials.Total += o.Total

		accumulateItems(items, o.Items)

		if o.OrderType == order.TypeDelivery {
			zone := area.ForOrder(o.Area, o.DeliveryAddress)
			acc := areas[zone]
			if acc == nil {
				acc = &areaAccumulator{}
				areas[zone] = acc
			}
			acc.orders++
			acc.revenue += o.Total
			acc.deliveryFees += pricing.DeliveryFeeOf(o)
		}

		if o.PromoCode != "" {
			p := promos[o.PromoCode]
			if p == nil {
				p = &PromoStat{Code: o.PromoCode}
				promos[o.PromoCode] = p
			}
			p.Uses++
			p.DiscountGranted += o.PromoDiscount
			p.NetRevenue += o.Total
		}
	}

	summary.TopItems = topItems(items)
	summary.TopAreas = topAreas(areas)
	summary.PromoUsage = topPromos(promos)
	return summary
}

type areaAccumulator struct {
	orders       int
	revenue      float64
	deliveryFees float64
}

// accumulateItems groups line revenue by cleaned item name. Legacy orders
// encode quantity in the title rather than the quantity field, so the parsed
// quantity stands in when the structured one is absent.
func accumulateItems(items map[string]*ItemStat, lines []order.Item) {
	for _, line := range lines {
		parsedQty, cleanName := order.ParseItemName(line.Title)
		qty := line.Quantity
		if qty <= 1 && parsedQty > 1 {
			qty = parsedQty
		}

		priced := line
		priced.Quantity = qty
		revenue := pricing.LineTotal(priced)

		stat := items[cleanName]
		if stat == nil {
			stat = &ItemStat{Name: cleanName}
			items[cleanName] = stat
		}
		stat.Quantity += qty
		stat.Revenue += revenue
	}
}

func topItems(items map[string]*ItemStat) []ItemStat {
	out := make([]ItemStat, 0, len(items))
	for _, stat := range items {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topItemsLimit {
		out = out[:topItemsLimit]
	}
	return out
}

func topAreas(areas map[string]*areaAccumulator) []AreaStat {
	out := make([]AreaStat, 0, len(areas))
	for zone, acc := range areas {
		stat := AreaStat{
			Area:                  zone,
			Orders:                acc.orders,
			EstimatedDeliveryFees: acc.deliveryFees,
		}
		if acc.orders > 0 {
			stat.AverageOrderValue = pricing.Round(acc.revenue / float64(acc.orders))
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].Area < out[j].Area
	})
	if len(out) > topAreasLimit {
		out = out[:topAreasLimit]
	}
	return out
}

func topPromos(promos map[string]*PromoStat) []PromoStat {
	out := make([]PromoStat, 0, len(promos))
	for _, stat := range promos {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Uses != out[j].Uses {
			return out[i].Uses > out[j].Uses
		}
		return out[i].Code < out[j].Code
	})
	if len(out) > topPromosLimit {
		out = out[:topPromosLimit]
	}
	return out
}
