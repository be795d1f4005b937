package atm

import (
	"encoding/json"

	"github.com/amirasaad/atm/pkg/domain/money"
)

//revive:disable

// AmountRequest is the body of deposit and withdraw requests. Amount accepts
// a JSON number or a decimal string such as "250.00".
type AmountRequest struct {
	Amount json.Number `json:"amount" xml:"amount" form:"amount" validate:"required"`
}

// TransferRequest is the body of a transfer request.
type TransferRequest struct {
	To     string      `json:"to" validate:"required,max=32"`
	Amount json.Number `json:"amount" validate:"required"`
}

// BalanceResponse is one account and its balance.
type BalanceResponse struct {
	Account string      `json:"account"`
	Balance money.Money `json:"balance"`
}

// CloseResponse is returned when the session ends.
type CloseResponse struct {
	Path    string `json:"path"`
	Receipt string `json:"receipt"`
}

//revive:enable
