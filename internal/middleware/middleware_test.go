package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/blackbank/blackbank/internal/logging"
)

type staticSession bool

func (s staticSession) Authenticated() bool { return bool(s) }

func TestRequireAuthenticated(t *testing.T) {
	for _, tc := range []struct {
		name    string
		session SessionChecker
		want    int
	}{
		{"nil session", nil, fiber.StatusUnauthorized},
		{"logged out", staticSession(false), fiber.StatusUnauthorized},
		{"logged in", staticSession(true), fiber.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/balance", RequireAuthenticated(tc.session), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/balance", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestRequestIDPropagatesToContextAndAudit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen string
	app := fiber.New()
	app.Use(RequestID(), Audit(logger))
	app.Get("/screen", func(c *fiber.Ctx) error {
		seen = logging.RequestID(c.UserContext())
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/withdraw", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "insufficient funds")
	})

	req := httptest.NewRequest(fiber.MethodGet, "/screen", nil)
	req.Header.Set(requestIDHeader, "req-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if seen != "req-1" || resp.Header.Get(requestIDHeader) != "req-1" {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, resp.Header.Get(requestIDHeader))
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode audit line: %v", err)
	}
	if line["request_id"] != "req-1" || line["path"] != "/screen" || line["status"] != float64(fiber.StatusOK) {
		t.Fatalf("unexpected audit line: %v", line)
	}

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/withdraw", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode audit line: %v", err)
	}
	if line["msg"] != "request rejected" || line["status"] != float64(fiber.StatusBadRequest) {
		t.Fatalf("unexpected audit line for rejection: %v", line)
	}
}
