// ABOUTME: User-facing success and failure notifications
// ABOUTME: Controllers report outcomes here; the CLI prints them and the TUI shows toasts

package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/luxefashion/luxe-cli/internal/tui/styles"
)

// Level distinguishes successful outcomes from failures
type Level int

const (
	LevelSuccess Level = iota
	LevelError
	LevelInfo
)

// Notification is one toast-style message
type Notification struct {
	Level       Level
	Title       string
	Description string
}

// Success builds a success notification
func Success(title, description string) Notification {
	return Notification{Level: LevelSuccess, Title: title, Description: description}
}

// Failure builds a failure notification
func Failure(title, description string) Notification {
	return Notification{Level: LevelError, Title: title, Description: description}
}

// Info builds an informational notification
func Info(title, description string) Notification {
	return Notification{Level: LevelInfo, Title: title, Description: description}
}

func (n Notification) String() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}

// Notifier receives notifications
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification
var Discard Notifier = Func(func(Notification) {})

// Writer prints styled notifications, one per line
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a Writer printing to w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (nw *Writer) Notify(n Notification) {
	nw.mu.Lock()
	defer nw.mu.Unlock()

	var title string
	switch n.Level {
	case LevelSuccess:
		title = styles.StatusOK.Render("✓ " + n.Title)
	case LevelError:
		title = styles.StatusCritical.Render("✗ " + n.Title)
	default:
		title = styles.StatusInfo.Render("• " + n.Title)
	}
	if n.Description == "" {
		fmt.Fprintln(nw.w, title)
		return
	}
	fmt.Fprintf(nw.w, "%s %s\n", title, n.Description)
}

// Recorder keeps notifications in memory
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, n)
}

// All returns the notifications received so far
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

// Last returns the most recent notification
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) == 0 {
		return Notification{}, false
	}
	return r.list[len(r.list)-1], true
}
