package billing

import (
	"crypto/sha512"
	"fmt"
	"time"

	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
)

const ProviderMidtrans = "midtrans"

// MidtransNotification is the Snap webhook payload. The order id is
// the checkout order we created, carrying the user id and target tier
// in its custom fields.
type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	CustomField1      string `json:"custom_field1"` // user id
	CustomField2      string `json:"custom_field2"` // target tier
}

// VerifySignature checks the Midtrans notification signature:
// SHA512(order_id + status_code + gross_amount + server_key).
func (n *MidtransNotification) VerifySignature(serverKey string) bool {
	input := n.OrderId + n.StatusCode + n.GrossAmount + serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
	return n.SignatureKey == expected
}

// DecodeMidtransNotification maps a verified notification onto a
// PlanEvent. Midtrans has no subscription lifecycle; a settled
// transaction is a completed checkout, a failed one a failed payment.
// Pending and unknown statuses are ignored.
func DecodeMidtransNotification(n *MidtransNotification) (*PlanEvent, bool, error) {
	var eventType EventType
	switch n.TransactionStatus {
	case "capture", "settlement":
		eventType = EventCheckoutCompleted
	case "deny", "cancel", "expire":
		eventType = EventPaymentFailed
	case "pending":
		return nil, false, nil
	default:
		return nil, false, nil
	}

	userId, err := uuid.Parse(n.CustomField1)
	if err != nil {
		return nil, false, ErrEventMalformed
	}

	out := &PlanEvent{
		Type:            eventType,
		Provider:        ProviderMidtrans,
		UserId:          userId,
		SubscriptionRef: n.OrderId,
		CustomerRef:     n.CustomField1,
		OccurredAt:      time.Now(),
	}
	if eventType == EventCheckoutCompleted {
		out.Tier = plancatalog.Tier(n.CustomField2)
		if err := out.Validate(); err != nil {
			return nil, false, err
		}
	}
	return out, true, nil
}
