package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

const (
	ActionAddToCart  = "add_to_cart"
	ActionPlaceOrder = "order"
)

// AppPayload is a decoded web app payload. The concrete type is either
// AddToCartPayload or PlaceOrderPayload.
type AppPayload interface {
	Action() string
}

// AddToCartPayload sets the quantity of one product in the sender's cart
type AddToCartPayload struct {
	ProductID string
	Quantity  int
}

// PlaceOrderPayload turns the sender's cart into an order
type PlaceOrderPayload struct {
	Name    string
	Address string
	Phone   string
}

func (AddToCartPayload) Action() string  { return ActionAddToCart }
func (PlaceOrderPayload) Action() string { return ActionPlaceOrder }

type rawPayload struct {
	Action    string      `json:"action"`
	ProductID flexibleID  `json:"productId"`
	Qty       *int        `json:"qty"`
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone"`
}

// DecodeAppPayload parses web app data. It returns e.ErrUnknownAction for an
// action it does not know and e.ErrMalformedPayload when a known action is
// missing a field.
func DecodeAppPayload(data []byte) (AppPayload, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, e.Wrap(err.Error(), e.ErrMalformedPayload)
	}

	switch raw.Action {
	case ActionAddToCart:
		id := strings.TrimSpace(string(raw.ProductID))
		if id == "" {
			return nil, fmt.Errorf("%w: productId is required", e.ErrMalformedPayload)
		}
		if raw.Qty == nil || *raw.Qty < 1 {
			return nil, fmt.Errorf("%w: qty must be a positive integer", e.ErrMalformedPayload)
		}
		return AddToCartPayload{ProductID: id, Quantity: *raw.Qty}, nil

	case ActionPlaceOrder:
		p := PlaceOrderPayload{
			Name:    strings.TrimSpace(raw.Name),
			Address: strings.TrimSpace(raw.Address),
			Phone:   strings.TrimSpace(raw.Phone),
		}
		var missing []string
		if p.Name == "" {
			missing = append(missing, "name")
		}
		if p.Address == "" {
			missing = append(missing, "address")
		}
		if p.Phone == "" {
			missing = append(missing, "phone")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: missing %s", e.ErrMalformedPayload, strings.Join(missing, ", "))
		}
		return p, nil

	default:
		return nil, fmt.Errorf("%w: %q", e.ErrUnknownAction, raw.Action)
	}
}

// flexibleID accepts both "abc" and 123 on the wire
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}
