// ABOUTME: Root bubbletea model for the shop TUI
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luxefashion/luxe-cli/internal/cart"
	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/handoff"
	"github.com/luxefashion/luxe-cli/internal/notify"
	"github.com/luxefashion/luxe-cli/internal/session"
	"github.com/luxefashion/luxe-cli/internal/tui/cartview"
	"github.com/luxefashion/luxe-cli/internal/tui/catalog"
	"github.com/luxefashion/luxe-cli/internal/tui/icons"
	"github.com/luxefashion/luxe-cli/internal/tui/menu"
	"github.com/luxefashion/luxe-cli/internal/tui/styles"
	"github.com/luxefashion/luxe-cli/internal/tui/summary"
	"github.com/luxefashion/luxe-cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCatalog
	ScreenProduct
	ScreenCart
	ScreenCheckout
	ScreenPayment
	ScreenAuth
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// Catalog is the read side of the storefront API the shop browses
type Catalog interface {
	ListCategories(ctx context.Context) ([]client.Category, error)
	ListProducts(ctx context.Context, q client.ProductQuery) (*client.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*client.Product, error)
}

// Deps are the controllers the shop drives
type Deps struct {
	Catalog  Catalog
	Session  *session.Service
	Cart     *cart.Synchronizer
	Checkout *checkout.Service
	Bridge   *Bridge
	Logger   *slog.Logger
	// CallbackListen is the loopback address for Google sign-in
	CallbackListen string
}

type categoriesLoadedMsg struct {
	categories []client.Category
	err        error
}

type pageLoadedMsg struct {
	page *client.ProductPage
	err  error
}

type productLoadedMsg struct {
	product *client.Product
	err     error
}

// cartSyncedMsg is sent when a cart operation finishes
type cartSyncedMsg struct {
	err error
}

// authDoneMsg is sent when a sign-in path finishes. attempt identifies
// the Google sign-in it belongs to.
type authDoneMsg struct {
	mode    wizard.AuthMode
	result  session.Result
	attempt int
}

type orderPlacedMsg struct {
	order *client.Order
	err   error
}

type paymentStartedMsg struct {
	payment *checkout.Payment
	err     error
}

type paymentCapturedMsg struct {
	result *client.CaptureResult
	err    error
}

// App is the root model for the TUI
type App struct {
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc
	unsub  func()

	screen Screen
	width  int
	height int
	notice *notify.Notification

	// Child models
	menu     *menu.Menu
	catalog  *catalog.Catalog
	detail   *catalog.Detail
	cartView *cartview.CartView
	checkout *wizard.Wizard
	auth     *wizard.AuthForm
	summary  *summary.Summary

	// returnTo is where a finished or cancelled sign-in goes back to
	returnTo Screen

	// googleCancel stops the pending Google sign-in, if any
	googleCancel  context.CancelFunc
	googleAttempt int
}

// New creates a new shop application
func New(d Deps) *App {
	if d.Bridge == nil {
		d.Bridge = NewBridge()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		deps:     d,
		ctx:      ctx,
		cancel:   cancel,
		screen:   ScreenMenu,
		cartView: cartview.New(0, 0),
	}
	a.unsub = d.Session.Subscribe(d.Bridge.AuthChanged)
	a.menu = menu.New(a.signedIn(), a.userName(), d.Cart.ItemCount())
	return a
}

// Close releases the session subscription and cancels in-flight work
func (a *App) Close() {
	a.stopGoogleSignIn()
	a.cancel()
	if a.unsub != nil {
		a.unsub()
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.deps.Bridge.listen(), a.refreshCart())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.cartView.SetSize(a.mainWidth(), a.contentHeight())
		if a.catalog != nil {
			a.catalog.SetWidth(a.width - panelPadding)
		}
		if a.checkout != nil {
			a.checkout.SetWidth(a.width - 1)
			return a.updateCheckout(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenCatalog:
			return a.updateCatalog(msg)
		case ScreenProduct:
			return a.updateProduct(msg)
		case ScreenCart:
			return a.updateCart(msg)
		case ScreenCheckout:
			return a.updateCheckout(msg)
		case ScreenPayment:
			return a.updatePayment(msg)
		case ScreenAuth:
			return a.updateAuth(msg)
		}

	// Bridge events
	case notificationMsg:
		n := msg.n
		a.notice = &n
		return a, a.deps.Bridge.listen()

	case authRequiredMsg:
		return a, tea.Batch(a.deps.Bridge.listen(), a.openAuth())

	case authChangedMsg:
		a.syncFromControllers()
		return a, a.deps.Bridge.listen()

	// Child component events
	case menu.SelectedMsg:
		return a.handleMenuSelected(msg)

	case catalog.PageRequestMsg:
		return a, a.loadPage(msg.Query)

	case catalog.ProductSelectedMsg:
		a.detail = catalog.NewDetail(msg.Product, a.width-panelPadding)
		a.screen = ScreenProduct
		return a, a.loadProduct(msg.Product.ID)

	case catalog.AddToCartMsg:
		return a, a.cartOp(func(ctx context.Context) error {
			return a.deps.Cart.AddItem(ctx, msg.Product, "", "", 1)
		})

	case catalog.AddSelectionMsg:
		return a, a.cartOp(func(ctx context.Context) error {
			return a.deps.Cart.AddItem(ctx, msg.Product, msg.Size, msg.Color, msg.Quantity)
		})

	case catalog.BackMsg:
		a.screen = ScreenCatalog
		a.detail = nil
		return a, nil

	case catalog.CancelledMsg:
		a.screen = ScreenMenu
		return a, nil

	case wizard.WizardCompleteMsg:
		return a.handleShippingComplete(msg)

	case wizard.WizardCancelledMsg:
		a.screen = ScreenCart
		a.checkout = nil
		return a, nil

	case wizard.AuthSubmittedMsg:
		return a, a.authenticate(msg)

	case wizard.AuthCancelledMsg:
		a.stopGoogleSignIn()
		a.auth = nil
		a.screen = a.returnTo
		return a, nil

	// Async results
	case categoriesLoadedMsg:
		if msg.err != nil {
			a.deps.Logger.Warn("failed to load categories", "error", msg.err)
			return a, nil
		}
		if a.catalog != nil {
			a.catalog.SetCategories(msg.categories)
		}
		return a, nil

	case pageLoadedMsg:
		if a.catalog == nil {
			return a, nil
		}
		if msg.err != nil {
			a.catalog.SetError(msg.err.Error())
			return a, nil
		}
		a.catalog.SetPage(msg.page)
		return a, nil

	case productLoadedMsg:
		if msg.err != nil {
			a.deps.Logger.Warn("failed to load product", "error", msg.err)
			return a, nil
		}
		if a.detail != nil && a.detail.Product().ID == msg.product.ID {
			a.detail.SetProduct(*msg.product)
		}
		return a, nil

	case cartSyncedMsg:
		if msg.err != nil && !errors.Is(msg.err, cart.ErrSignInRequired) {
			a.deps.Logger.Warn("cart operation failed", "error", msg.err)
		}
		a.syncFromControllers()
		return a, nil

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case orderPlacedMsg:
		if msg.err != nil {
			a.summary.SetError(msg.err.Error())
			return a, nil
		}
		return a, a.startPayment(msg.order.ID)

	case paymentStartedMsg:
		if msg.err != nil {
			a.summary.SetError(msg.err.Error())
			return a, nil
		}
		a.summary.SetPayment(msg.payment)
		return a, nil

	case paymentCapturedMsg:
		if msg.err != nil {
			a.summary.SetError(msg.err.Error())
			return a, nil
		}
		a.summary.SetResult(msg.result)
		a.syncFromControllers()
		return a, nil

	default:
		// huh forms need their own internal messages
		if a.screen == ScreenCheckout && a.checkout != nil {
			return a.updateCheckout(msg)
		}
		if a.screen == ScreenAuth && a.auth != nil {
			return a.updateAuth(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.catalog == nil {
		return a, nil
	}
	if !a.catalog.Searching() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "v":
			return a.openCart()
		}
	}
	model, cmd := a.catalog.Update(msg)
	a.catalog = model.(*catalog.Catalog)
	return a, cmd
}

func (a *App) updateProduct(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.detail == nil {
		return a, nil
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "v":
		return a.openCart()
	}
	model, cmd := a.detail.Update(msg)
	a.detail = model.(*catalog.Detail)
	return a, cmd
}

func (a *App) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		a.cartView.MoveUp()
	case "down", "j":
		a.cartView.MoveDown()
	case "+", "=":
		if item, ok := a.cartView.Selected(); ok {
			return a, a.setQuantity(item, item.Quantity+1)
		}
	case "-":
		if item, ok := a.cartView.Selected(); ok {
			return a, a.setQuantity(item, item.Quantity-1)
		}
	case "d", "x":
		if item, ok := a.cartView.Selected(); ok {
			return a, a.cartOp(func(ctx context.Context) error {
				return a.deps.Cart.RemoveItem(ctx, item.ProductID, item.Size, item.Color)
			})
		}
	case "r":
		return a, a.refreshCart()
	case "c":
		return a.openCheckout()
	case "b", "esc":
		a.screen = ScreenMenu
	}
	return a, nil
}

func (a *App) updateCheckout(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.checkout == nil {
		return a, nil
	}
	model, cmd := a.checkout.Update(msg)
	a.checkout = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.auth == nil {
		return a, nil
	}
	model, cmd := a.auth.Update(msg)
	a.auth = model.(*wizard.AuthForm)
	return a, cmd
}

func (a *App) updatePayment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "c":
		if a.summary != nil && a.summary.Payment() != nil && !a.summary.Paid() {
			return a, a.capturePayment(a.summary.Payment())
		}
	case "b", "esc":
		a.screen = ScreenMenu
		a.summary = nil
	}
	return a, nil
}

func (a *App) handleMenuSelected(msg menu.SelectedMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case menu.ActionBrowse:
		return a.openCatalog()
	case menu.ActionCart:
		return a.openCart()
	case menu.ActionCheckout:
		return a.openCheckout()
	case menu.ActionSignIn:
		return a, a.openAuth()
	case menu.ActionSignOut:
		return a, func() tea.Msg {
			a.deps.Session.Logout()
			return authDoneMsg{result: session.Result{Success: true}}
		}
	case menu.ActionQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) openCatalog() (tea.Model, tea.Cmd) {
	a.screen = ScreenCatalog
	if a.catalog != nil {
		return a, nil
	}
	a.catalog = catalog.New(nil)
	a.catalog.SetWidth(a.width - panelPadding)
	return a, tea.Batch(a.loadCategories(), a.loadPage(a.catalog.Query()))
}

func (a *App) openCart() (tea.Model, tea.Cmd) {
	if !a.deps.Session.HasToken() {
		return a, a.openAuth()
	}
	a.screen = ScreenCart
	return a, a.refreshCart()
}

func (a *App) openCheckout() (tea.Model, tea.Cmd) {
	if a.deps.Cart.ItemCount() == 0 {
		n := notify.Info("Your cart is empty", "Add something before checking out")
		a.notice = &n
		return a, nil
	}
	a.checkout = wizard.New(a.deps.Session.User(), a.deps.Cart.Total())
	a.checkout.SetWidth(a.width - 1)
	a.screen = ScreenCheckout
	return a, a.checkout.Init()
}

func (a *App) openAuth() tea.Cmd {
	if a.screen == ScreenAuth {
		return nil
	}
	a.returnTo = a.screen
	a.auth = wizard.NewAuthForm()
	a.screen = ScreenAuth
	return a.auth.Init()
}

func (a *App) handleShippingComplete(msg wizard.WizardCompleteMsg) (tea.Model, tea.Cmd) {
	a.checkout = nil
	method := msg.Details.ShippingMethod
	a.summary = summary.New(a.deps.Checkout.Summary(method), method, a.width-panelPadding)
	a.screen = ScreenPayment
	return a, a.placeOrder(msg.Details)
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	a.syncFromControllers()

	if msg.mode == "" {
		// sign-out
		a.screen = ScreenMenu
		return a, nil
	}

	if msg.mode == wizard.ModeGoogle {
		if a.googleCancel == nil || msg.attempt != a.googleAttempt {
			// cancelled or superseded
			return a, nil
		}
		a.stopGoogleSignIn()
	}

	if !msg.result.Success {
		if msg.result.Error != "" {
			n := notify.Failure("Sign-in failed", msg.result.Error)
			a.notice = &n
		}
		if msg.mode == wizard.ModeGoogle {
			a.auth = nil
			a.screen = a.returnTo
			return a, nil
		}
		// Let the shopper try again
		a.auth = wizard.NewAuthForm()
		return a, a.auth.Init()
	}

	var n notify.Notification
	switch msg.mode {
	case wizard.ModeForgot:
		n = notify.Success("Check your email", "If an account exists, a reset link is on its way")
	case wizard.ModeSignUp:
		n = notify.Success("Welcome to LUXE", "Your account has been created")
	case wizard.ModeGoogle:
		// the callback already notified
	default:
		n = notify.Success("Welcome back", "You have successfully signed in")
	}
	if n.Title != "" {
		a.notice = &n
	}

	a.auth = nil
	a.screen = a.returnTo
	if a.screen == ScreenAuth {
		a.screen = ScreenMenu
	}
	return a, nil
}

// syncFromControllers copies session and cart state into the views
func (a *App) syncFromControllers() {
	c := a.deps.Cart
	a.cartView.SetItems(c.Items(), c.ItemCount(), c.Total())
	a.menu.SetState(a.signedIn(), a.userName(), c.ItemCount())
}

func (a *App) signedIn() bool {
	return a.deps.Session.IsAuthenticated()
}

func (a *App) userName() string {
	if u := a.deps.Session.User(); u != nil {
		return u.Name
	}
	return ""
}

// Commands

func (a *App) loadCategories() tea.Cmd {
	return func() tea.Msg {
		cats, err := a.deps.Catalog.ListCategories(a.ctx)
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

func (a *App) loadPage(q client.ProductQuery) tea.Cmd {
	return func() tea.Msg {
		page, err := a.deps.Catalog.ListProducts(a.ctx, q)
		return pageLoadedMsg{page: page, err: err}
	}
}

func (a *App) loadProduct(id string) tea.Cmd {
	return func() tea.Msg {
		p, err := a.deps.Catalog.GetProduct(a.ctx, id)
		return productLoadedMsg{product: p, err: err}
	}
}

func (a *App) refreshCart() tea.Cmd {
	return a.cartOp(a.deps.Cart.Refresh)
}

func (a *App) setQuantity(item cart.LineItem, quantity int) tea.Cmd {
	return a.cartOp(func(ctx context.Context) error {
		return a.deps.Cart.UpdateQuantity(ctx, item.ProductID, item.Size, item.Color, quantity)
	})
}

func (a *App) cartOp(fn func(ctx context.Context) error) tea.Cmd {
	a.cartView.SetPending(true)
	return func() tea.Msg {
		return cartSyncedMsg{err: fn(a.ctx)}
	}
}

func (a *App) authenticate(msg wizard.AuthSubmittedMsg) tea.Cmd {
	sess := a.deps.Session
	if msg.Mode == wizard.ModeGoogle {
		ctx, attempt := a.startGoogleSignIn()
		return func() tea.Msg {
			return authDoneMsg{mode: msg.Mode, result: a.googleSignIn(ctx), attempt: attempt}
		}
	}
	return func() tea.Msg {
		switch msg.Mode {
		case wizard.ModeSignUp:
			return authDoneMsg{mode: msg.Mode, result: sess.Signup(a.ctx, msg.Email, msg.Password, msg.Name)}
		case wizard.ModeForgot:
			return authDoneMsg{mode: msg.Mode, result: sess.RequestPasswordReset(a.ctx, msg.Email)}
		default:
			return authDoneMsg{mode: msg.Mode, result: sess.Login(a.ctx, msg.Email, msg.Password)}
		}
	}
}

// startGoogleSignIn replaces any pending Google sign-in with a new attempt
func (a *App) startGoogleSignIn() (context.Context, int) {
	a.stopGoogleSignIn()
	ctx, cancel := context.WithCancel(a.ctx)
	a.googleCancel = cancel
	return ctx, a.googleAttempt
}

// stopGoogleSignIn cancels the pending attempt, releasing its callback
// port, and makes its result stale
func (a *App) stopGoogleSignIn() {
	if a.googleCancel == nil {
		return
	}
	a.googleCancel()
	a.googleCancel = nil
	a.googleAttempt++
}

// googleSignIn opens the browser and waits on the loopback callback
// until ctx ends
func (a *App) googleSignIn(ctx context.Context) session.Result {
	sess := a.deps.Session
	l := handoff.NewListener(sess, a.deps.Bridge, a.deps.Logger)

	out, err := l.Serve(ctx, a.deps.CallbackListen, func(net.Addr) {
		if err := sess.LoginWithGoogle(); err != nil {
			a.deps.Logger.Error("failed to open browser", "error", err)
			a.deps.Bridge.Notify(notify.Info("Open this link to sign in", sess.GoogleAuthURL()))
		}
	})
	if err != nil {
		return session.Result{Error: err.Error()}
	}
	if !out.SignedIn {
		return session.Result{}
	}
	return session.Result{Success: true}
}

func (a *App) placeOrder(details client.ShippingDetails) tea.Cmd {
	return func() tea.Msg {
		order, err := a.deps.Checkout.PlaceOrder(a.ctx, details)
		return orderPlacedMsg{order: order, err: err}
	}
}

func (a *App) startPayment(orderID string) tea.Cmd {
	return func() tea.Msg {
		p, err := a.deps.Checkout.StartPayment(a.ctx, orderID)
		return paymentStartedMsg{payment: p, err: err}
	}
}

func (a *App) capturePayment(p *checkout.Payment) tea.Cmd {
	return func() tea.Msg {
		res, err := a.deps.Checkout.CapturePayment(a.ctx, p)
		return paymentCapturedMsg{result: res, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenCatalog:
		if a.catalog != nil {
			content = styles.ActivePanel.Width(a.width - panelPadding).Render(a.catalog.View())
		}
	case ScreenProduct:
		if a.detail != nil {
			content = styles.ActivePanel.Width(a.width - panelPadding).Render(a.detail.View())
		}
	case ScreenCart:
		content = a.viewCart()
	case ScreenCheckout:
		if a.checkout != nil {
			content = a.checkout.View()
		}
	case ScreenPayment:
		if a.summary != nil {
			content = styles.ActivePanel.Width(a.width - panelPadding).Render(a.summary.View())
		}
	case ScreenAuth:
		if a.auth != nil {
			content = styles.ActivePanel.Width(a.width - panelPadding).Render(a.auth.View())
		}
	default:
		content = a.menu.View()
	}

	return a.wrapWithFrame(content)
}

// viewCart renders the cart with actions pane
func (a *App) viewCart() string {
	leftPane := styles.ActivePanel.Width(a.mainWidth()).Render(a.cartView.View())

	rightContent := styles.Title.Render(icons.Cart.String()+" Actions") + "\n\n"
	rightContent += icons.Plus.String() + " Increase quantity\n"
	rightContent += icons.Minus.String() + " Decrease quantity\n"
	rightContent += icons.Trash.String() + " Remove item\n"
	rightContent += icons.Card.String() + " Checkout\n"
	rightContent += icons.Refresh.String() + " Refresh\n"
	rightContent += icons.Back.String() + " Back to menu\n"
	rightPane := styles.Panel.Width(a.sideWidth()).Render(rightContent)

	if a.width < minTerminalWidth {
		return leftPane
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// mainWidth calculates the width for the primary pane
func (a *App) mainWidth() int {
	if a.width < minTerminalWidth {
		return a.width - panelPadding
	}
	return (a.width-panelPadding)*2/3
}

// sideWidth calculates the width for the actions pane
func (a *App) sideWidth() int {
	return a.width - a.mainWidth() - 2*panelPadding
}

// contentHeight calculates the height available for content:
// header, panel border and padding, and footer take 8 lines
func (a *App) contentHeight() int {
	return a.height - 8
}

// frameWidth is the header and footer width, clamped for tiny terminals
func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// renderHeader creates the header bar with branding and session context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("LUXE"))

	right := ""
	if name := a.userName(); name != "" {
		right = " " + contextStyle.Render(fmt.Sprintf("%s %s  %s %d", icons.User, name, icons.Cart, a.deps.Cart.ItemCount())) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)) // -4 for ╭─ and ─╮
	header := "╭─" + left + strings.Repeat("─", fillWidth) + right + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and the latest notice
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenCatalog:
		shortcuts = []string{"Enter Open", "a Add", "/ Search", "c Category", "n/p Page", "v Cart", "b Back"}
	case ScreenProduct:
		shortcuts = []string{"s Size", "o Color", "+/- Qty", "a Add", "v Cart", "b Back"}
	case ScreenCart:
		shortcuts = []string{"+/- Qty", "d Remove", "c Checkout", "r Refresh", "b Back"}
	case ScreenCheckout, ScreenAuth:
		shortcuts = []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case ScreenPayment:
		shortcuts = []string{"c Capture", "b Menu", "q Quit"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	left := " " + strings.Join(styled, "  ") + " "

	right := ""
	if a.notice != nil {
		right = " " + noticeStyle(a.notice.Level).Render(a.notice.Title) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)) // -4 for ╰─ and ─╯
	footer := "╰─" + left + strings.Repeat("─", fillWidth) + right + "─╯"

	return borderStyle.Render(footer)
}

func noticeStyle(level notify.Level) lipgloss.Style {
	switch level {
	case notify.LevelSuccess:
		return styles.StatusOK
	case notify.LevelError:
		return styles.StatusCritical
	default:
		return styles.StatusInfo
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until the shopper quits
func Run(d Deps) error {
	app := New(d)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
