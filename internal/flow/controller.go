// Package flow sequences the session screens and dispatches user intents to
// the account. It never retries and never leaves the current screen on a
// failed operation.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blackbank/blackbank/internal/account"
	"github.com/blackbank/blackbank/internal/logging"
	"github.com/blackbank/blackbank/internal/notification"
)

var (
	// ErrNotAuthenticated indicates the intent needs a logged-in session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrIntentNotAllowed indicates the intent is not valid on the current screen.
	ErrIntentNotAllowed = errors.New("intent not allowed on current screen")
)

// View is a consistent snapshot of what the presentation should render.
type View struct {
	Screen        Screen
	Authenticated bool
	Balance       decimal.Decimal
}

// Confirmation describes an applied transfer. It is handed back to the
// caller and not retained.
type Confirmation struct {
	Reference    string
	RecipientKey string
	Amount       decimal.Decimal
	Balance      decimal.Decimal
	CompletedAt  time.Time
}

// Controller owns the current screen and routes intents to the account.
type Controller struct {
	mu       sync.Mutex
	account  *account.Account
	screen   Screen
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewController starts a session on the login screen. notifier may be nil.
func NewController(acct *account.Account, notifier notification.Notifier, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		account:  acct,
		screen:   ScreenLogin,
		notifier: notifier,
		logger:   logger,
	}
}

// CurrentScreen returns the active screen.
func (c *Controller) CurrentScreen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Authenticated reports whether the session has logged in.
func (c *Controller) Authenticated() bool {
	return c.account.Authenticated()
}

// Balance returns the account balance.
func (c *Controller) Balance() decimal.Decimal {
	return c.account.Balance()
}

// View returns screen, authentication flag and balance read together.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Screen:        c.screen,
		Authenticated: c.account.Authenticated(),
		Balance:       c.account.Balance(),
	}
}

// Login authenticates the session and moves Login -> Home.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.log(ctx, "login")

	if c.screen != ScreenLogin {
		return c.reject(log, ErrIntentNotAllowed)
	}
	if err := c.account.Login(account.Credentials{Username: username, Password: password}); err != nil {
		return c.reject(log, err)
	}
	c.moveTo(log, ScreenHome)
	return nil
}

// SelectWithdraw moves Home -> Withdraw.
func (c *Controller) SelectWithdraw(ctx context.Context) error {
	return c.transition(ctx, "select_withdraw", ScreenHome, ScreenWithdraw)
}

// SelectDeposit moves Home -> Deposit.
func (c *Controller) SelectDeposit(ctx context.Context) error {
	return c.transition(ctx, "select_deposit", ScreenHome, ScreenDeposit)
}

// SelectTransfer moves Home -> Transfer.
func (c *Controller) SelectTransfer(ctx context.Context) error {
	return c.transition(ctx, "select_transfer", ScreenHome, ScreenTransfer)
}

// AcknowledgeTransfer moves TransferConfirmed -> Home.
func (c *Controller) AcknowledgeTransfer(ctx context.Context) error {
	return c.transition(ctx, "acknowledge_transfer", ScreenTransferConfirmed, ScreenHome)
}

// Cancel abandons a withdraw, deposit or transfer screen and returns Home.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.log(ctx, "cancel")

	if err := c.guard(); err != nil {
		return c.reject(log, err)
	}
	switch c.screen {
	case ScreenWithdraw, ScreenDeposit, ScreenTransfer:
		c.moveTo(log, ScreenHome)
		return nil
	default:
		return c.reject(log, ErrIntentNotAllowed)
	}
}

// Withdraw confirms the withdraw screen. On success the session returns
// Home; on failure it stays on Withdraw.
func (c *Controller) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.log(ctx, "withdraw").With(slog.String("amount", amount.String()))

	if err := c.require(ScreenWithdraw); err != nil {
		return c.reject(log, err)
	}
	if err := c.account.Withdraw(amount); err != nil {
		return c.reject(log, err)
	}
	c.moveTo(log, ScreenHome)
	c.notify(ctx, log, notification.Message{Kind: notification.KindWithdrawal, Amount: amount.StringFixed(2)})
	return nil
}

// Deposit confirms the deposit screen. On success the session returns
// Home; on failure it stays on Deposit.
func (c *Controller) Deposit(ctx context.Context, amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.log(ctx, "deposit").With(slog.String("amount", amount.String()))

	if err := c.require(ScreenDeposit); err != nil {
		return c.reject(log, err)
	}
	if err := c.account.Deposit(amount); err != nil {
		return c.reject(log, err)
	}
	c.moveTo(log, ScreenHome)
	c.notify(ctx, log, notification.Message{Kind: notification.KindDeposit, Amount: amount.StringFixed(2)})
	return nil
}

// Transfer sends a PIX transfer from the transfer screen. On success the
// session moves to TransferConfirmed; on failure it stays on Transfer.
func (c *Controller) Transfer(ctx context.Context, pixKey string, amount decimal.Decimal) (Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.log(ctx, "transfer").With(slog.String("amount", amount.String()))

	if err := c.require(ScreenTransfer); err != nil {
		return Confirmation{}, c.reject(log, err)
	}
	if err := c.account.Transfer(account.Transfer{RecipientKey: pixKey, Amount: amount}); err != nil {
		return Confirmation{}, c.reject(log, err)
	}

	conf := Confirmation{
		Reference:    uuid.NewString(),
		RecipientKey: pixKey,
		Amount:       amount,
		Balance:      c.account.Balance(),
		CompletedAt:  time.Now().UTC(),
	}
	c.moveTo(log, ScreenTransferConfirmed)
	c.notify(ctx, log, notification.Message{
		Kind:        notification.KindPixTransfer,
		Destination: pixKey,
		Amount:      amount.StringFixed(2),
		Reference:   conf.Reference,
	})
	return conf, nil
}

func (c *Controller) transition(ctx context.Context, intent string, from, to Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.log(ctx, intent)

	if err := c.require(from); err != nil {
		return c.reject(log, err)
	}
	c.moveTo(log, to)
	return nil
}

// guard enforces that post-login screens are only used while authenticated.
func (c *Controller) guard() error {
	if !c.account.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (c *Controller) require(screen Screen) error {
	if screen.requiresAuth() {
		if err := c.guard(); err != nil {
			return err
		}
	}
	if c.screen != screen {
		return fmt.Errorf("%w: on %s, need %s", ErrIntentNotAllowed, c.screen, screen)
	}
	return nil
}

func (c *Controller) moveTo(log *slog.Logger, next Screen) {
	log.Info("intent accepted", slog.String("next_screen", next.String()))
	c.screen = next
}

func (c *Controller) reject(log *slog.Logger, err error) error {
	log.Warn("intent rejected", slog.Any("error", err))
	return err
}

func (c *Controller) notify(ctx context.Context, log *slog.Logger, msg notification.Message) {
	if c.notifier == nil {
		return
	}
	msg.Balance = c.account.Balance().StringFixed(2)
	if err := c.notifier.Send(ctx, msg); err != nil {
		log.Warn("notification failed", slog.Any("error", err))
	}
}

func (c *Controller) log(ctx context.Context, intent string) *slog.Logger {
	return logging.FromContext(ctx, c.logger).With(
		slog.String("intent", intent),
		slog.String("screen", c.screen.String()),
	)
}
