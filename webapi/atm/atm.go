package atm

import (
	"github.com/amirasaad/atm/pkg/domain/money"
	atmsvc "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/amirasaad/atm/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the ATM session endpoints.
//
// Routes:
//   - GET    /accounts                    : Balances of every account.
//   - GET    /accounts/:number/balance    : Balance check (recorded).
//   - POST   /accounts/:number/deposit    : Deposit into the account.
//   - POST   /accounts/:number/withdraw   : Withdraw from the account.
//   - POST   /accounts/:number/transfer   : Transfer to another account.
//   - GET    /transactions                : The session's transaction log.
//   - GET    /receipt                     : Receipt preview as plain text.
//   - POST   /session/close               : Persist the receipt and end the session.
func Routes(app *fiber.App, svc *atmsvc.Service) {
	app.Get("/accounts", ListAccounts(svc))
	app.Get("/accounts/:number/balance", GetBalance(svc))
	app.Post("/accounts/:number/deposit", Deposit(svc))
	app.Post("/accounts/:number/withdraw", Withdraw(svc))
	app.Post("/accounts/:number/transfer", Transfer(svc))
	app.Get("/transactions", ListTransactions(svc))
	app.Get("/receipt", PreviewReceipt(svc))
	app.Post("/session/close", CloseSession(svc))
}

// ListAccounts returns every account in order of first appearance.
func ListAccounts(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts := svc.Balances(c.UserContext())
		resp := make([]BalanceResponse, 0, len(accounts))
		for _, a := range accounts {
			resp = append(resp, BalanceResponse{Account: a.Number, Balance: a.Balance})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", resp)
	}
}

// GetBalance checks the balance of the account in the path.
func GetBalance(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		bal, err := svc.CheckBalance(c.UserContext(), number)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to check balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance fetched",
			BalanceResponse{Account: number, Balance: bal})
	}
}

// Deposit credits the account in the path.
func Deposit(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err // error response already written
		}
		amount, err := money.Parse(input.Amount.String())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		bal, err := svc.Deposit(c.UserContext(), number, amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful",
			BalanceResponse{Account: number, Balance: bal})
	}
}

// Withdraw debits the account in the path.
func Withdraw(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err // error response already written
		}
		amount, err := money.Parse(input.Amount.String())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		bal, err := svc.Withdraw(c.UserContext(), number, amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful",
			BalanceResponse{Account: number, Balance: bal})
	}
}

// Transfer moves funds from the account in the path to the one in the body.
func Transfer(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err // error response already written
		}
		amount, err := money.Parse(input.Amount.String())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		res, err := svc.Transfer(c.UserContext(), c.Params("number"), input.To, amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", res)
	}
}

// ListTransactions returns the session's journal in order.
func ListTransactions(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", svc.Entries(c.UserContext()))
	}
}

// PreviewReceipt renders the receipt without saving it.
func PreviewReceipt(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text, err := svc.Receipt(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "No receipt", err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(text)
	}
}

// CloseSession writes the receipt file and stores the session when configured.
func CloseSession(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text, err := svc.Close(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to close session", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Session closed",
			CloseResponse{Path: svc.ReceiptPath(), Receipt: text})
	}
}
