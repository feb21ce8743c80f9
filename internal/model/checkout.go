package model

// PaymentOption is the route selected at checkout: card network or
// third-party wallet.
const (
	PaymentOptionStripe = "stripe"
	PaymentOptionPaypal = "paypal"
)

// ValidPaymentOption reports whether option names a supported payment route.
func ValidPaymentOption(option string) bool {
	return option == PaymentOptionStripe || option == PaymentOptionPaypal
}

// CheckoutRequest is the request payload for checkout submission.
type CheckoutRequest struct {
	Shipping           AddressInput `json:"shipping"`
	Billing            AddressInput `json:"billing"`
	UseDefaultShipping bool         `json:"useDefaultShipping"`
	SetDefaultShipping bool         `json:"setDefaultShipping"`
	SameBillingAddress bool         `json:"sameBillingAddress"`
	UseDefaultBilling  bool         `json:"useDefaultBilling"`
	SetDefaultBilling  bool         `json:"setDefaultBilling"`
	PaymentOption      string       `json:"paymentOption"`
}

// CheckoutResponse points the client at the payment step for the chosen option.
type CheckoutResponse struct {
	OrderID     string `json:"orderId"`
	PaymentPath string `json:"paymentPath"`
}
