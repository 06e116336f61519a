package shippo

// shipmentRequest is the body for POST /shipments/
type shipmentRequest struct {
	AddressFrom addressPayload  `json:"address_from"`
	AddressTo   addressPayload  `json:"address_to"`
	Parcels     []parcelPayload `json:"parcels"`
	Async       bool            `json:"async"`
}

// addressPayload is a Shippo address
type addressPayload struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// parcelPayload is a Shippo parcel. Dimensions in inches, weight in ounces.
type parcelPayload struct {
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	DistanceUnit string `json:"distance_unit"`
	Weight       string `json:"weight"`
	MassUnit     string `json:"mass_unit"`
}

// shipmentResponse is the response from POST /shipments/
type shipmentResponse struct {
	ObjectID string        `json:"object_id"`
	Status   string        `json:"status"`
	Rates    []ratePayload `json:"rates"`
	Messages []apiMessage  `json:"messages"`
}

// ratePayload is one purchasable rate
type ratePayload struct {
	ObjectID      string              `json:"object_id"`
	Provider      string              `json:"provider"`
	ServiceLevel  serviceLevelPayload `json:"servicelevel"`
	Amount        string              `json:"amount"`
	Currency      string              `json:"currency"`
	EstimatedDays int                 `json:"estimated_days"`
}

// serviceLevelPayload names the carrier service
type serviceLevelPayload struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// transactionRequest is the body for POST /transactions/
type transactionRequest struct {
	Rate          string `json:"rate"`
	LabelFileType string `json:"label_file_type"`
	Async         bool   `json:"async"`
}

// transactionResponse is a purchased label
type transactionResponse struct {
	ObjectID       string       `json:"object_id"`
	Status         string       `json:"status"`
	TrackingNumber string       `json:"tracking_number"`
	LabelURL       string       `json:"label_url"`
	Rate           ratePayload  `json:"rate"`
	Messages       []apiMessage `json:"messages"`
}

// trackResponse is the response from GET /tracks/{carrier}/{number}
type trackResponse struct {
	Carrier        string          `json:"carrier"`
	TrackingNumber string          `json:"tracking_number"`
	TrackingStatus *trackingStatus `json:"tracking_status"`
}

// trackingStatus is the latest tracking event
type trackingStatus struct {
	Status        string           `json:"status"`
	StatusDetails string           `json:"status_details"`
	Location      trackingLocation `json:"location"`
}

// trackingLocation is where the tracking event happened
type trackingLocation struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// apiMessage is a warning or error attached to a Shippo object
type apiMessage struct {
	Source string `json:"source"`
	Code   string `json:"code"`
	Text   string `json:"text"`
}
