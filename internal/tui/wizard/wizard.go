// ABOUTME: Checkout shipping wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/icons"
	"github.com/luxefashion/luxe-cli/internal/tui/styles"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

// WizardCompleteMsg is sent when the shipping details are collected
type WizardCompleteMsg struct {
	Details client.ShippingDetails
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard collects shipping details for checkout
type Wizard struct {
	details client.ShippingDetails
	form    *huh.Form
	step    int
	width   int
	// subtotal drives the free shipping hint on the delivery step
	subtotal float64
}

// Step names for progress indicator
var stepNames = []string{"Contact", "Address", "Delivery"}

// createTheme returns the huh theme in the storefront palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	gold := lipgloss.Color("#C9A227")
	goldLight := lipgloss.Color("#E5C76B")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	charcoal := lipgloss.Color("#2A2A2A")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(gold).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(gold)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(goldLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(gold).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(gold).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(gold)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(gold)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(gold).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(charcoal).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates a shipping wizard prefilled from the signed-in user
func New(user *client.User, subtotal float64) *Wizard {
	details := client.ShippingDetails{
		Country:        checkout.DefaultCountry,
		ShippingMethod: checkout.MethodStandard,
	}
	if user != nil {
		details.Email = user.Email
		first, last, _ := strings.Cut(strings.TrimSpace(user.Name), " ")
		details.FirstName = first
		details.LastName = strings.TrimSpace(last)
	}

	w := &Wizard{
		details:  details,
		step:     1,
		subtotal: subtotal,
	}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&w.details.FirstName).Validate(required("first name")),
			huh.NewInput().Title("Last name").Value(&w.details.LastName).Validate(required("last name")),
			huh.NewInput().Title("Email").Value(&w.details.Email).Validate(validateEmail),
			huh.NewInput().Title("Phone").Value(&w.details.Phone).Validate(required("phone")),
		).Title("Step 1: Contact").
			Description("Where should we send order updates?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Street address").Value(&w.details.Address).Validate(required("address")),
			huh.NewInput().Title("City").Value(&w.details.City).Validate(required("city")),
			huh.NewInput().Title("State").Value(&w.details.State).Validate(required("state")),
			huh.NewInput().Title("ZIP code").CharLimit(10).Value(&w.details.Zip).Validate(required("zip")),
			huh.NewInput().Title("Country").Value(&w.details.Country).Validate(required("country")),
		).Title("Step 2: Address").
			Description("Where should we deliver your order?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	standard := fmt.Sprintf("Standard (%s)", widgets.Price(checkout.ShippingCost(w.subtotal, checkout.MethodStandard)))
	if checkout.ShippingCost(w.subtotal, checkout.MethodStandard) == 0 {
		standard = "Standard (free)"
	}
	express := fmt.Sprintf("Express (%s)", widgets.Price(checkout.ShippingCost(w.subtotal, checkout.MethodExpress)))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Shipping method").
				Description(fmt.Sprintf("Standard shipping is free on orders over %s", widgets.Price(checkout.FreeShippingThreshold))).
				Options(
					huh.NewOption(standard, checkout.MethodStandard),
					huh.NewOption(express, checkout.MethodExpress),
				).
				Value(&w.details.ShippingMethod),
		).Title("Step 3: Delivery").
			Description("Choose how fast you want it"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		details := checkout.Normalize(w.details)
		return w, func() tea.Msg {
			return WizardCompleteMsg{Details: details}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Details returns the shipping details collected so far
func (w *Wizard) Details() client.ShippingDetails {
	return w.details
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	styledTitle := titleStyle.Render("Checkout")
	titleWidth := lipgloss.Width("Checkout")

	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + filledBar + emptyBar + " │"

	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}
