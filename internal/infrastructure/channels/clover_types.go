package channels

import "github.com/shopspring/decimal"

// CloverOrderListResponse is the response from GET /v3/merchants/{mId}/orders
type CloverOrderListResponse struct {
	Elements []CloverOrder `json:"elements"`
	Href     string        `json:"href"`
}

// CloverOrder is a single order as returned by the Clover API.
// All monetary fields are integer cents.
type CloverOrder struct {
	ID                string               `json:"id"`
	State             string               `json:"state"`
	PaymentState      string               `json:"paymentState"`
	Total             int64                `json:"total"`
	CreatedTime       int64                `json:"createdTime"`
	ClientCreatedTime int64                `json:"clientCreatedTime"`
	Currency          string               `json:"currency"`
	Note              string               `json:"note"`
	LineItems         CloverLineItems      `json:"lineItems"`
	Discounts         CloverDiscounts      `json:"discounts"`
	Customers         CloverOrderCustomers `json:"customers"`
}

// CloverLineItems wraps the expanded lineItems element list
type CloverLineItems struct {
	Elements []CloverLineItem `json:"elements"`
}

// CloverLineItem is one line on a Clover order
type CloverLineItem struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Price     int64               `json:"price"`
	UnitQty   int64               `json:"unitQty"`
	Item      CloverItemRef       `json:"item"`
	TaxRates  CloverLineTaxRates  `json:"taxRates"`
	Discounts CloverLineDiscounts `json:"discounts"`
	Refunded  bool                `json:"refunded"`
}

// CloverItemRef links a line item back to the inventory item
type CloverItemRef struct {
	ID string `json:"id"`
}

// CloverLineTaxRates wraps the tax rates applied to a line
type CloverLineTaxRates struct {
	Elements []CloverTaxRate `json:"elements"`
}

// CloverTaxRate is a tax rate applied to a line. Rate is in units of
// 1/10,000,000 of a percent, per the Clover API.
type CloverTaxRate struct {
	Name string `json:"name"`
	Rate int64  `json:"rate"`
}

// CloverDiscounts wraps order-level discounts
type CloverDiscounts struct {
	Elements []CloverDiscount `json:"elements"`
}

// CloverLineDiscounts wraps line-level discounts
type CloverLineDiscounts struct {
	Elements []CloverDiscount `json:"elements"`
}

// CloverDiscount is a discount amount in cents (negative) or a percentage
type CloverDiscount struct {
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	Percentage int64  `json:"percentage"`
}

// CloverOrderCustomers wraps customers attached to an order
type CloverOrderCustomers struct {
	Elements []CloverCustomer `json:"elements"`
}

// CloverCustomer is a customer record on an order
type CloverCustomer struct {
	ID             string                `json:"id"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	EmailAddresses CloverEmailAddresses  `json:"emailAddresses"`
}

// CloverEmailAddresses wraps a customer's email list
type CloverEmailAddresses struct {
	Elements []CloverEmailAddress `json:"elements"`
}

// CloverEmailAddress is one email on a customer record
type CloverEmailAddress struct {
	EmailAddress string `json:"emailAddress"`
}

// CloverItemStock is the request/response body for item stock updates
type CloverItemStock struct {
	Quantity float64 `json:"quantity"`
}

// centsToDecimal converts integer cents to a decimal dollar amount
func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
