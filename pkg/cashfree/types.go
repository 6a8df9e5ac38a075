package cashfree

import (
	"encoding/json"
	"strings"

	"consultpay/pkg/model"
)

const (
	OrderStatusPaid    = "PAID"
	OrderStatusExpired = "EXPIRED"
	OrderStatusFailed  = "FAILED"
	OrderStatusPending = "PENDING"
)

type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type OrderMeta struct {
	ReturnURL      string `json:"return_url,omitempty"`
	NotifyURL      string `json:"notify_url,omitempty"`
	PaymentMethods string `json:"payment_methods,omitempty"`
}

type CartItem struct {
	ItemID                  string  `json:"item_id"`
	ItemName                string  `json:"item_name"`
	ItemDescription         string  `json:"item_description,omitempty"`
	ItemOriginalUnitPrice   float64 `json:"item_original_unit_price"`
	ItemDiscountedUnitPrice float64 `json:"item_discounted_unit_price"`
	ItemQuantity            int     `json:"item_quantity"`
	ItemCurrency            string  `json:"item_currency"`
}

type CartDetails struct {
	CartItems []CartItem `json:"cart_items"`
}

type CreateOrderRequest struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     float64           `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails CustomerDetails   `json:"customer_details"`
	OrderMeta       *OrderMeta        `json:"order_meta,omitempty"`
	CartDetails     *CartDetails      `json:"cart_details,omitempty"`
	OrderExpiryTime string            `json:"order_expiry_time,omitempty"`
	OrderNote       string            `json:"order_note,omitempty"`
	OrderTags       map[string]string `json:"order_tags,omitempty"`
}

// Order is the order entity returned by create and fetch calls.
type Order struct {
	CfOrderID        json.RawMessage       `json:"cf_order_id,omitempty"`
	OrderID          string                `json:"order_id"`
	OrderAmount      float64               `json:"order_amount"`
	OrderCurrency    string                `json:"order_currency"`
	OrderStatus      string                `json:"order_status"`
	OrderExpiryTime  string                `json:"order_expiry_time,omitempty"`
	PaymentSessionID string                `json:"payment_session_id"`
	PaymentLink      string                `json:"payment_link,omitempty"`
	PaymentDetails   *model.PaymentDetails `json:"payment_details,omitempty"`
	Payments         json.RawMessage       `json:"payments,omitempty"`
}

// Details returns payment_details when present, otherwise the payments object.
// An absent or non-object payments value yields empty details.
func (o *Order) Details() model.PaymentDetails {
	if o.PaymentDetails != nil {
		return *o.PaymentDetails
	}

	var details model.PaymentDetails
	raw := strings.TrimSpace(string(o.Payments))
	if strings.HasPrefix(raw, "{") {
		_ = json.Unmarshal(o.Payments, &details)
	}
	return details
}

// PaymentURL returns the hosted checkout link when the provider supplied one.
func (o *Order) PaymentURL() string {
	if o.PaymentLink != "" {
		return o.PaymentLink
	}
	return o.Details().URL
}
