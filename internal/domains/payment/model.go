package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is the payment channel. Casing matches the mobile app's
// picker values, so it is preserved on the wire.
type Method string

const (
	MethodJazzCash     Method = "JazzCash"
	MethodEasyPaisa    Method = "EasyPaisa"
	MethodBankTransfer Method = "BankTransfer"
	MethodCash         Method = "Cash"
)

// ParseMethod matches case-insensitively but returns canonical casing.
func ParseMethod(s string) (Method, bool) {
	for _, m := range []Method{MethodJazzCash, MethodEasyPaisa, MethodBankTransfer, MethodCash} {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Payment records a client's payment intent for a ride. Settlement
// happens outside this service; status starts pending.
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	RideID    uuid.UUID       `json:"ride_id" db:"ride_id"`
	ClientID  uuid.UUID       `json:"client_id" db:"client_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    Method          `json:"method" db:"method"`
	Status    Status          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
