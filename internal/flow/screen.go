package flow

import "fmt"

// Screen is the mode the session is currently in.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenHome
	ScreenWithdraw
	ScreenDeposit
	ScreenTransfer
	ScreenTransferConfirmed
)

var screenNames = map[Screen]string{
	ScreenLogin:             "login",
	ScreenHome:              "home",
	ScreenWithdraw:          "withdraw",
	ScreenDeposit:           "deposit",
	ScreenTransfer:          "transfer",
	ScreenTransferConfirmed: "transfer_confirmed",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// MarshalText renders the screen by name in JSON payloads.
func (s Screen) MarshalText() ([]byte, error) {
	if _, ok := screenNames[s]; !ok {
		return nil, fmt.Errorf("unknown screen %d", int(s))
	}
	return []byte(s.String()), nil
}

// requiresAuth reports whether the screen is only reachable after login.
func (s Screen) requiresAuth() bool {
	return s != ScreenLogin
}
