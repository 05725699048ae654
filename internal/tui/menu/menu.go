// ABOUTME: Main menu shown when the shop starts
// ABOUTME: Offers browsing, cart, checkout, and sign-in actions based on session state

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luxefashion/luxe-cli/internal/tui/icons"
	"github.com/luxefashion/luxe-cli/internal/tui/styles"
)

// Action is a menu entry's effect
type Action int

const (
	ActionBrowse Action = iota
	ActionCart
	ActionCheckout
	ActionSignIn
	ActionSignOut
	ActionQuit
)

// SelectedMsg is sent when an enabled entry is chosen
type SelectedMsg struct {
	Action Action
}

type option struct {
	label   string
	action  Action
	enabled bool
	reason  string
}

// Menu is the storefront's main menu
type Menu struct {
	options   []option
	cursor    int
	userName  string
	signedIn  bool
	cartCount int
}

// New creates a menu for the given session state
func New(signedIn bool, userName string, cartCount int) *Menu {
	m := &Menu{}
	m.SetState(signedIn, userName, cartCount)
	return m
}

// SetState rebuilds the entries after a sign-in change or cart update
func (m *Menu) SetState(signedIn bool, userName string, cartCount int) {
	m.signedIn = signedIn
	m.userName = userName
	m.cartCount = cartCount

	m.options = []option{
		{label: icons.Tag.String() + " Browse the collection", action: ActionBrowse, enabled: true},
		{label: fmt.Sprintf("%s View cart (%d)", icons.Cart, cartCount), action: ActionCart, enabled: signedIn, reason: "sign in first"},
		{label: icons.Card.String() + " Checkout", action: ActionCheckout, enabled: signedIn && cartCount > 0, reason: checkoutReason(signedIn)},
	}
	if signedIn {
		m.options = append(m.options, option{label: icons.Lock.String() + " Sign out", action: ActionSignOut, enabled: true})
	} else {
		m.options = append(m.options, option{label: icons.User.String() + " Sign in or create an account", action: ActionSignIn, enabled: true})
	}
	m.options = append(m.options, option{label: icons.Quit.String() + " Quit", action: ActionQuit, enabled: true})

	if m.cursor >= len(m.options) {
		m.cursor = len(m.options) - 1
	}
}

func checkoutReason(signedIn bool) string {
	if !signedIn {
		return "sign in first"
	}
	return "cart is empty"
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		opt := m.options[m.cursor]
		if !opt.enabled {
			return m, nil
		}
		return m, func() tea.Msg { return SelectedMsg{Action: opt.action} }
	case "q", "esc":
		return m, func() tea.Msg { return SelectedMsg{Action: ActionQuit} }
	}
	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("LUXE"))
	b.WriteString("\n")
	if m.signedIn && m.userName != "" {
		b.WriteString(styles.Subtitle.Render("Welcome back, " + m.userName))
	} else {
		b.WriteString(styles.Subtitle.Render("Curated fashion, delivered"))
	}
	b.WriteString("\n")

	for i, opt := range m.options {
		cursor := "  "
		style := styles.Normal
		if i == m.cursor {
			cursor = "> "
			style = styles.Selected
		}
		label := opt.label
		if !opt.enabled {
			style = styles.Disabled
			label = fmt.Sprintf("%s (%s)", label, opt.reason)
		}
		b.WriteString(cursor + style.Render(label) + "\n")
	}

	return b.String()
}

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionBrowse:
		return "browse"
	case ActionCart:
		return "cart"
	case ActionCheckout:
		return "checkout"
	case ActionSignIn:
		return "signin"
	case ActionSignOut:
		return "signout"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}
