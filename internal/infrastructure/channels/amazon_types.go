package channels

// AmazonTokenResponse is the LWA token endpoint response
type AmazonTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AmazonOrdersResponse is the response from GET /orders/v0/orders
type AmazonOrdersResponse struct {
	Payload AmazonOrdersPayload `json:"payload"`
}

// AmazonOrdersPayload holds the order page and pagination token
type AmazonOrdersPayload struct {
	Orders    []AmazonOrder `json:"Orders"`
	NextToken string        `json:"NextToken"`
}

// AmazonOrderResponse is the response from GET /orders/v0/orders/{id}
type AmazonOrderResponse struct {
	Payload AmazonOrder `json:"payload"`
}

// AmazonOrder is one order from the SP-API Orders endpoint
type AmazonOrder struct {
	AmazonOrderID    string          `json:"AmazonOrderId"`
	OrderStatus      string          `json:"OrderStatus"`
	PurchaseDate     string          `json:"PurchaseDate"`
	OrderTotal       AmazonMoney     `json:"OrderTotal"`
	BuyerInfo        AmazonBuyerInfo `json:"BuyerInfo"`
	MarketplaceID    string          `json:"MarketplaceId"`
	SalesChannel     string          `json:"SalesChannel"`
	FulfillmentChannel string        `json:"FulfillmentChannel"`
}

// AmazonMoney is an SP-API money value
type AmazonMoney struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       string `json:"Amount"`
}

// AmazonBuyerInfo is the (restricted) buyer data on an order
type AmazonBuyerInfo struct {
	BuyerEmail string `json:"BuyerEmail"`
	BuyerName  string `json:"BuyerName"`
}

// AmazonOrderItemsResponse is the response from GET /orders/v0/orders/{id}/orderItems
type AmazonOrderItemsResponse struct {
	Payload AmazonOrderItemsPayload `json:"payload"`
}

// AmazonOrderItemsPayload holds the item page for one order
type AmazonOrderItemsPayload struct {
	OrderItems []AmazonOrderItem `json:"OrderItems"`
	NextToken  string            `json:"NextToken"`
}

// AmazonOrderItem is one line on an Amazon order
type AmazonOrderItem struct {
	ASIN            string      `json:"ASIN"`
	SellerSKU       string      `json:"SellerSKU"`
	OrderItemID     string      `json:"OrderItemId"`
	Title           string      `json:"Title"`
	QuantityOrdered int         `json:"QuantityOrdered"`
	ItemPrice       AmazonMoney `json:"ItemPrice"`
	ItemTax         AmazonMoney `json:"ItemTax"`
	ShippingPrice   AmazonMoney `json:"ShippingPrice"`
	PromotionDiscount AmazonMoney `json:"PromotionDiscount"`
}

// AmazonListingsPatchRequest is the body for PATCH /listings/2021-08-01/items/{sellerId}/{sku}
type AmazonListingsPatchRequest struct {
	ProductType string                `json:"productType"`
	Patches     []AmazonListingsPatch `json:"patches"`
}

// AmazonListingsPatch is one JSON-patch operation on a listing
type AmazonListingsPatch struct {
	Op    string        `json:"op"`
	Path  string        `json:"path"`
	Value []interface{} `json:"value"`
}

// AmazonFulfillmentAvailability carries the quantity for a listings patch
type AmazonFulfillmentAvailability struct {
	FulfillmentChannelCode string `json:"fulfillment_channel_code"`
	Quantity               int    `json:"quantity"`
}
