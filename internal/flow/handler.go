package flow

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/blackbank/blackbank/internal/account"
)

// Handler exposes the session flow over HTTP.
type Handler struct {
	controller *Controller
}

// NewHandler builds a flow HTTP handler.
func NewHandler(controller *Controller) *Handler {
	return &Handler{controller: controller}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// amountRequest carries the parsed amount; decimal accepts JSON strings and numbers.
type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	PixKey string          `json:"pix_key"`
	Amount decimal.Decimal `json:"amount"`
}

// Amounts carry at most cents and stay below a trillion. Anything else would
// rescale the balance without bound.
const (
	minAmountExponent = -2
	maxAmountExponent = 12
)

var maxAmount = decimal.New(1, maxAmountExponent)

// parseAmount rejects values the account cannot hold at cent precision. Sign
// is left to the account.
func parseAmount(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp < minAmountExponent || exp > maxAmountExponent || amount.Abs().GreaterThanOrEqual(maxAmount) {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}
	return nil
}

type viewResponse struct {
	Screen        Screen `json:"screen"`
	Authenticated bool   `json:"authenticated"`
	Balance       string `json:"balance,omitempty"`
}

func (h *Handler) view(c *fiber.Ctx, status int) error {
	v := h.controller.View()
	resp := viewResponse{Screen: v.Screen, Authenticated: v.Authenticated}
	if v.Authenticated {
		resp.Balance = v.Balance.StringFixed(2)
	}
	return c.Status(status).JSON(resp)
}

// Login authenticates the session.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.controller.Login(c.UserContext(), req.Username, req.Password); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// Screen returns the current screen.
func (h *Handler) Screen(c *fiber.Ctx) error {
	return h.view(c, http.StatusOK)
}

// Balance returns the current balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"balance": h.controller.Balance().StringFixed(2),
	})
}

// SelectWithdraw opens the withdraw screen.
func (h *Handler) SelectWithdraw(c *fiber.Ctx) error {
	if err := h.controller.SelectWithdraw(c.UserContext()); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// SelectDeposit opens the deposit screen.
func (h *Handler) SelectDeposit(c *fiber.Ctx) error {
	if err := h.controller.SelectDeposit(c.UserContext()); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// SelectTransfer opens the transfer screen.
func (h *Handler) SelectTransfer(c *fiber.Ctx) error {
	if err := h.controller.SelectTransfer(c.UserContext()); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// Cancel leaves the current operation screen.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	if err := h.controller.Cancel(c.UserContext()); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// Acknowledge dismisses the transfer confirmation.
func (h *Handler) Acknowledge(c *fiber.Ctx) error {
	if err := h.controller.AcknowledgeTransfer(c.UserContext()); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// Withdraw confirms a withdrawal.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}
	if err := parseAmount(req.Amount); err != nil {
		return err
	}
	if err := h.controller.Withdraw(c.UserContext(), req.Amount); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// Deposit confirms a deposit.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}
	if err := parseAmount(req.Amount); err != nil {
		return err
	}
	if err := h.controller.Deposit(c.UserContext(), req.Amount); err != nil {
		return toHTTPError(err)
	}
	return h.view(c, http.StatusOK)
}

// Transfer sends a PIX transfer.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}
	if err := parseAmount(req.Amount); err != nil {
		return err
	}
	conf, err := h.controller.Transfer(c.UserContext(), req.PixKey, req.Amount)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"reference":    conf.Reference,
		"pix_key":      conf.RecipientKey,
		"amount":       conf.Amount.StringFixed(2),
		"balance":      conf.Balance.StringFixed(2),
		"completed_at": conf.CompletedAt,
		"screen":       ScreenTransferConfirmed,
	})
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, account.ErrInvalidCredentials), errors.Is(err, ErrNotAuthenticated):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, account.ErrInvalidAmount), errors.Is(err, account.ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrIntentNotAllowed):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
