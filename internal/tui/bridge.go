// ABOUTME: Bridge carrying controller callbacks into the running bubbletea program
// ABOUTME: Implements the notifier and navigator the cart and checkout report to

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luxefashion/luxe-cli/internal/notify"
)

// bridgeBuffer bounds queued events; sends never block and drop when full
const bridgeBuffer = 32

// notificationMsg delivers a controller notification to the app
type notificationMsg struct {
	n notify.Notification
}

// authRequiredMsg is sent when the cart needs a signed-in user
type authRequiredMsg struct{}

// authChangedMsg is sent after sign-in or sign-out
type authChangedMsg struct{}

// Bridge queues controller events until the program reads them
type Bridge struct {
	events chan tea.Msg
}

// NewBridge creates an empty bridge
func NewBridge() *Bridge {
	return &Bridge{events: make(chan tea.Msg, bridgeBuffer)}
}

// Notify implements notify.Notifier
func (b *Bridge) Notify(n notify.Notification) {
	b.send(notificationMsg{n: n})
}

// RedirectToAuth implements cart.Navigator
func (b *Bridge) RedirectToAuth() {
	b.send(authRequiredMsg{})
}

// AuthChanged forwards a session broadcast
func (b *Bridge) AuthChanged() {
	b.send(authChangedMsg{})
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.events <- msg:
	default:
	}
}

// listen waits for the next event; the app re-issues it after each one
func (b *Bridge) listen() tea.Cmd {
	return func() tea.Msg {
		return <-b.events
	}
}
