package atm_test

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type ATMTestSuite struct {
	suite.Suite
	app *fiber.App
	cfg *config.App
}

func (s *ATMTestSuite) SetupTest() {
	s.cfg = testutils.TestConfig(s.T())
	s.app, _ = testutils.SetupTestApp(s.T(), s.cfg)
}

func TestATMTestSuite(t *testing.T) {
	suite.Run(t, new(ATMTestSuite))
}

func (s *ATMTestSuite) TestListAccounts() {
	resp := testutils.MakeRequest(s.app, fiber.MethodGet, "/accounts", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	body := testutils.DecodeResponse(s.T(), resp)
	accounts, ok := body.Data.([]any)
	s.Require().True(ok)
	s.Require().Len(accounts, 3)
	first, ok := accounts[0].(map[string]any)
	s.Require().True(ok)
	s.Equal("112211", first["account"])
	s.Equal("1000.00", first["balance"])
}

func (s *ATMTestSuite) TestGetBalance() {
	s.Run("existing account", func() {
		resp := testutils.MakeRequest(s.app, fiber.MethodGet, "/accounts/223322/balance", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		data, ok := testutils.DecodeResponse(s.T(), resp).Data.(map[string]any)
		s.Require().True(ok)
		s.Equal("2500.00", data["balance"])
	})

	s.Run("unknown account", func() {
		resp := testutils.MakeRequest(s.app, fiber.MethodGet, "/accounts/999999/balance", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusNotFound, resp.StatusCode)
		s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
		problem := testutils.DecodeProblem(s.T(), resp)
		s.Equal("Failed to check balance", problem.Title)
		s.Equal("/accounts/999999/balance", problem.Instance)
	})
}

func (s *ATMTestSuite) TestDepositAndWithdraw() {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBal    string
	}{
		{"deposit string amount", "/accounts/112211/deposit", `{"amount":"250.00"}`, fiber.StatusOK, "1250.00"},
		{"deposit number amount", "/accounts/112211/deposit", `{"amount":0.5}`, fiber.StatusOK, "1250.50"},
		{"deposit zero", "/accounts/112211/deposit", `{"amount":"0"}`, fiber.StatusBadRequest, ""},
		{"deposit missing amount", "/accounts/112211/deposit", `{}`, fiber.StatusBadRequest, ""},
		{"deposit malformed body", "/accounts/112211/deposit", `{"amount":`, fiber.StatusBadRequest, ""},
		{"deposit unknown account", "/accounts/000000/deposit", `{"amount":"1"}`, fiber.StatusNotFound, ""},
		{"withdraw too much", "/accounts/112211/withdraw", `{"amount":"2000"}`, fiber.StatusUnprocessableEntity, ""},
		{"withdraw negative", "/accounts/112211/withdraw", `{"amount":"-5"}`, fiber.StatusBadRequest, ""},
		{"withdraw ok", "/accounts/112211/withdraw", `{"amount":"50.50"}`, fiber.StatusOK, "1200.00"},
	}
	for _, tt := range tests {
		resp := testutils.MakeRequest(s.app, fiber.MethodPost, tt.path, tt.body)
		s.Equal(tt.wantStatus, resp.StatusCode, tt.name)
		if tt.wantBal != "" {
			data, ok := testutils.DecodeResponse(s.T(), resp).Data.(map[string]any)
			s.Require().True(ok, tt.name)
			s.Equal(tt.wantBal, data["balance"], tt.name)
		}
		_ = resp.Body.Close()
	}
}

func (s *ATMTestSuite) TestTransfer() {
	s.Run("to a new ten digit account", func() {
		resp := testutils.MakeRequest(s.app, fiber.MethodPost, "/accounts/112211/transfer",
			`{"to":"1122334455","amount":"500.00"}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		data, ok := testutils.DecodeResponse(s.T(), resp).Data.(map[string]any)
		s.Require().True(ok)
		s.Equal("500.00", data["from_balance"])
		s.Equal("500.00", data["to_balance"])
	})

	s.Run("to a malformed new account", func() {
		resp := testutils.MakeRequest(s.app, fiber.MethodPost, "/accounts/112211/transfer",
			`{"to":"12345","amount":"1"}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})

	s.Run("missing target", func() {
		resp := testutils.MakeRequest(s.app, fiber.MethodPost, "/accounts/112211/transfer", `{"amount":"1"}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		problem := testutils.DecodeProblem(s.T(), resp)
		s.Equal("Validation failed", problem.Title)
	})
}

func (s *ATMTestSuite) TestReceiptLifecycle() {
	resp := testutils.MakeRequest(s.app, fiber.MethodGet, "/receipt", "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	resp = testutils.MakeRequest(s.app, fiber.MethodPost, "/session/close", "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	resp = testutils.MakeRequest(s.app, fiber.MethodPost, "/accounts/112211/deposit", `{"amount":"250.00"}`)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = testutils.MakeRequest(s.app, fiber.MethodGet, "/transactions", "")
	entries, ok := testutils.DecodeResponse(s.T(), resp).Data.([]any)
	_ = resp.Body.Close()
	s.Require().True(ok)
	s.Len(entries, 1)

	resp = testutils.MakeRequest(s.app, fiber.MethodGet, "/receipt", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	s.Require().NoError(err)
	preview := string(raw)
	s.Contains(preview, "ATM RECEIPT SLIP")
	s.Contains(preview, "Deposit: Account 112211 deposited $250.00")

	resp = testutils.MakeRequest(s.app, fiber.MethodPost, "/session/close", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data, ok := testutils.DecodeResponse(s.T(), resp).Data.(map[string]any)
	_ = resp.Body.Close()
	s.Require().True(ok)
	s.Equal(s.cfg.Receipt.File, data["path"])

	saved, err := os.ReadFile(s.cfg.Receipt.File)
	s.Require().NoError(err)
	s.True(strings.HasSuffix(string(saved), "===============================\n"))
	s.Equal(data["receipt"], string(saved))
}
