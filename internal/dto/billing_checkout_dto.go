package dto

import "time"

type CreateCheckoutRequest struct {
	Tier     string `json:"tier" validate:"required,oneof=PRO ENTERPRISE"`
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=stripe midtrans"`
}

type CreateCheckoutResponse struct {
	Provider string `json:"provider"`
	// CheckoutURL is Stripe's hosted page; Token is Midtrans Snap's
	// client token. Exactly one is set depending on the provider.
	CheckoutURL string `json:"checkout_url,omitempty"`
	Token       string `json:"token,omitempty"`
	OrderId     string `json:"order_id,omitempty"`
}

type SubscriptionResponse struct {
	Plan               string     `json:"plan"`
	Status             string     `json:"status"`
	Provider           string     `json:"provider,omitempty"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
}

type CancelSubscriptionResponse struct {
	Status            string     `json:"status"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
	EffectiveAt       *time.Time `json:"effective_at,omitempty"`
}

type BillingPortalResponse struct {
	PortalURL string `json:"portal_url"`
}
