package channels

import "github.com/shopspring/decimal"

// parseDecimal parses a decimal string, returning zero on malformed input
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// BigCommerceOrder is an order from the v2 orders API. Monetary fields are
// decimal strings.
type BigCommerceOrder struct {
	ID                   int                       `json:"id"`
	StatusID             int                       `json:"status_id"`
	Status               string                    `json:"status"`
	DateCreated          string                    `json:"date_created"`
	SubtotalExTax        string                    `json:"subtotal_ex_tax"`
	TotalIncTax          string                    `json:"total_inc_tax"`
	TotalTax             string                    `json:"total_tax"`
	ShippingCostIncTax   string                    `json:"shipping_cost_inc_tax"`
	DiscountAmount       string                    `json:"discount_amount"`
	CouponDiscount       string                    `json:"coupon_discount"`
	CurrencyCode         string                    `json:"currency_code"`
	BillingAddress       BigCommerceBillingAddress `json:"billing_address"`
	CustomerMessage      string                    `json:"customer_message"`
	PaymentMethod        string                    `json:"payment_method"`
	IsDeleted            bool                      `json:"is_deleted"`
	ExternalOrderID      string                    `json:"external_id"`
	ItemsTotal           int                       `json:"items_total"`
}

// BigCommerceBillingAddress is the billing contact on an order
type BigCommerceBillingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// BigCommerceOrderProduct is one line from GET /v2/orders/{id}/products
type BigCommerceOrderProduct struct {
	ID         int    `json:"id"`
	ProductID  int    `json:"product_id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	BasePrice  string `json:"base_price"`
	TotalIncTax string `json:"total_inc_tax"`
	TotalExTax  string `json:"total_ex_tax"`
}

// BigCommerceProductUpdate is the body for PUT /v3/catalog/products/{id}
type BigCommerceProductUpdate struct {
	InventoryLevel int `json:"inventory_level"`
}

// BigCommerce v2 order status IDs
const (
	bigCommerceStatusPending            = 1
	bigCommerceStatusShipped            = 2
	bigCommerceStatusPartiallyShipped   = 3
	bigCommerceStatusRefunded           = 4
	bigCommerceStatusCancelled          = 5
	bigCommerceStatusDeclined           = 6
	bigCommerceStatusAwaitingPayment    = 7
	bigCommerceStatusAwaitingPickup     = 8
	bigCommerceStatusAwaitingShipment   = 9
	bigCommerceStatusCompleted          = 10
	bigCommerceStatusAwaitingFulfilment = 11
	bigCommerceStatusManualVerification = 12
	bigCommerceStatusDisputed           = 13
	bigCommerceStatusPartiallyRefunded  = 14
)
