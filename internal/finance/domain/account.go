package domain

import "time"

const (
	AccountTypeCash   = "cash"
	AccountTypeCard   = "card"
	AccountTypeCrypto = "crypto"
	AccountTypeOther  = "other"
)

// AccountTypes returns the fixed account type enumeration, in display order.
func AccountTypes() []string {
	return []string{AccountTypeCash, AccountTypeCard, AccountTypeCrypto, AccountTypeOther}
}

type Account struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Currency            string     `json:"currency"`
	Balance             float64    `json:"balance"`
	InitialBalance      float64    `json:"initialBalance"`
	Status              string     `json:"status"`
	CreatedDate         time.Time  `json:"createdDate"`
	ClosedDate          *time.Time `json:"closedDate,omitempty"`
	LastTransactionDate *time.Time `json:"lastTransactionDate,omitempty"`
	Note                string     `json:"note"`
}

type Currencies struct {
	Regular []string `json:"regular"`
	Crypto  []string `json:"crypto"`
}
