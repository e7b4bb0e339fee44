// Package order holds the canonical order model: the normalized line-item
// shape every historical checkout payload is folded into, the status state
// machine, and the legacy name/quantity parser.
package order

import "time"

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProcess  Status = "In-Process"
	StatusDispatched Status = "Dispatched"
	StatusComplete   Status = "Complete"
	StatusCancel     Status = "Cancel"
)

type OrderType string

const (
	TypeDelivery OrderType = "delivery"
	TypePickup   OrderType = "pickup"
)

// Variation is a single chosen size/type variant. Its price replaces the
// item's base price when set.
type Variation struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Extra struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type SideOrder struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Item is the canonical order line. Checkout submits items in three
// overlapping shapes (structured, legacy modifications array, flat type
// field); NormalizeItems folds all of them into this one and nothing past
// the boundary branches on shape again.
type Item struct {
	ID                  string      `json:"id,omitempty"`
	Title               string      `json:"title"`
	Price               float64     `json:"price"`
	Quantity            int         `json:"quantity"`
	ImageURL            string      `json:"imageUrl,omitempty"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	SelectedVariation   *Variation  `json:"selectedVariation,omitempty"`
	SelectedExtras      []Extra     `json:"selectedExtras,omitempty"`
	SelectedSideOrders  []SideOrder `json:"selectedSideOrders,omitempty"`
}

// Order is the root aggregate. Financial amounts are whole rupees.
type Order struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
	BranchID    int64  `json:"branchId"`
	BranchName  string `json:"branchName,omitempty"`

	FullName        string `json:"fullName"`
	Mobile          string `json:"mobileNumber"`
	AlternateMobile string `json:"alternateMobile,omitempty"`
	Email           string `json:"email,omitempty"`

	OrderType       OrderType `json:"orderType"`
	DeliveryAddress string    `json:"deliveryAddress,omitempty"`
	Area            string    `json:"area,omitempty"`
	Landmark        string    `json:"nearestLandmark,omitempty"`
	PickupTime      string    `json:"pickupTime,omitempty"`

	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Discount    float64 `json:"discount"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`

	PromoCode                string  `json:"promoCode,omitempty"`
	PromoDiscount            float64 `json:"promoDiscount,omitempty"`
	PromoDiscountPercentage  float64 `json:"promoDiscountPercentage,omitempty"`
	GlobalDiscount           float64 `json:"globalDiscount,omitempty"`
	GlobalDiscountPercentage float64 `json:"globalDiscountPercentage,omitempty"`

	PaymentMethod   string  `json:"paymentMethod"`
	ReceiptImageURL string  `json:"receiptImageUrl,omitempty"`
	BankName        string  `json:"bankName,omitempty"`
	ChangeRequest   float64 `json:"changeRequest,omitempty"`

	Status       Status `json:"status"`
	CancelReason string `json:"cancelReason,omitempty"`

	IsGift       bool   `json:"isGift,omitempty"`
	GiftMessage  string `json:"giftMessage,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	Items []Item `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SpecialInstructionsBlock joins per-line special instructions into the
// single block shown on slips and order detail.
func (o *Order) SpecialInstructionsBlock() string {
	out := ""
	for _, item := range o.Items {
		if item.SpecialInstructions == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += item.Title + ": " + item.SpecialInstructions
	}
	return out
}
