package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/atm/internal/fixtures/accounts"
	"github.com/amirasaad/atm/pkg/app"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/ledger"
	"github.com/amirasaad/atm/webapi"
	"github.com/amirasaad/atm/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// TestConfig returns a configuration that keeps everything local to the test.
func TestConfig(t *testing.T) *config.App {
	t.Helper()
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{Format: "text", TimeFormat: time.DateTime},
		DB:        &config.DB{},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Receipt:   &config.Receipt{File: filepath.Join(t.TempDir(), "atm_receipt.txt")},
		Seed:      &config.Seed{Source: config.SeedSourceCSV},
		Archive:   &config.Archive{},
	}
}

// SetupTestApp builds the HTTP app over a ledger seeded with the demo accounts.
func SetupTestApp(t *testing.T, cfg *config.App) (*fiber.App, *app.App) {
	t.Helper()
	seed, err := accounts.LoadCSV("")
	require.NoError(t, err)
	l, err := ledger.New(seed...)
	require.NoError(t, err)

	a := app.New(&app.Deps{
		Ledger: l,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, cfg)
	return webapi.SetupApp(a), a
}

// MakeRequest sends a JSON request to the app and returns the response.
func MakeRequest(app *fiber.App, method, url, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}

// DecodeResponse decodes a success envelope.
func DecodeResponse(t *testing.T, resp *http.Response) common.Response {
	t.Helper()
	var out common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// DecodeProblem decodes a problem details body.
func DecodeProblem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	var out common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
