// ABOUTME: Sign-in, sign-up, and forgot-password form for the storefront
// ABOUTME: Wraps a huh form and reports the submitted mode and fields

package wizard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// AuthMode is the sign-in path the shopper picked
type AuthMode string

const (
	ModeSignIn AuthMode = "signin"
	ModeSignUp AuthMode = "signup"
	ModeGoogle AuthMode = "google"
	ModeForgot AuthMode = "forgot"
)

// AuthSubmittedMsg carries the credentials entered in the auth form.
// Validation is left to the session so messages match the CLI.
type AuthSubmittedMsg struct {
	Mode     AuthMode
	Name     string
	Email    string
	Password string
}

// AuthCancelledMsg is sent when the auth form is cancelled
type AuthCancelledMsg struct{}

// AuthForm asks how to sign in, then for the matching credentials
type AuthForm struct {
	mode     AuthMode
	name     string
	email    string
	password string
	form     *huh.Form
	step     int
}

// NewAuthForm creates the auth form starting at the mode choice
func NewAuthForm() *AuthForm {
	a := &AuthForm{mode: ModeSignIn, step: 1}
	a.form = a.createModeForm()
	return a
}

func (a *AuthForm) createModeForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[AuthMode]().
				Title("How would you like to continue?").
				Options(
					huh.NewOption("Sign in with email", ModeSignIn),
					huh.NewOption("Create an account", ModeSignUp),
					huh.NewOption("Continue with Google", ModeGoogle),
					huh.NewOption("Forgot password", ModeForgot),
				).
				Value(&a.mode),
		).Title("Welcome to LUXE"),
	).WithTheme(createTheme())
}

func (a *AuthForm) createCredentialsForm() *huh.Form {
	email := huh.NewInput().Title("Email").Value(&a.email)
	password := huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&a.password)

	var group *huh.Group
	switch a.mode {
	case ModeSignUp:
		group = huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&a.name),
			email,
			password.Description("At least 8 characters"),
		).Title("Create an account")
	case ModeForgot:
		group = huh.NewGroup(email).
			Title("Reset your password").
			Description("We will email you a reset link")
	default:
		group = huh.NewGroup(email, password).Title("Sign in")
	}
	return huh.NewForm(group).WithTheme(createTheme())
}

// Mode returns the chosen sign-in path
func (a *AuthForm) Mode() AuthMode {
	return a.mode
}

// Init implements tea.Model
func (a *AuthForm) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements tea.Model
func (a *AuthForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return a, func() tea.Msg { return AuthCancelledMsg{} }
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		return a.advance()
	}
	return a, cmd
}

func (a *AuthForm) advance() (tea.Model, tea.Cmd) {
	if a.step == 1 && a.mode != ModeGoogle {
		a.step = 2
		a.form = a.createCredentialsForm()
		return a, a.form.Init()
	}
	return a, a.submit()
}

func (a *AuthForm) submit() tea.Cmd {
	msg := AuthSubmittedMsg{Mode: a.mode, Name: a.name, Email: a.email, Password: a.password}
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (a *AuthForm) View() string {
	return a.form.View()
}
