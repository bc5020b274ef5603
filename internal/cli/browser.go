package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ErrUnsafeURL is returned when asked to open anything but an absolute http(s) URL.
var ErrUnsafeURL = errors.New("refusing to open non-http URL")

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct {
	// command overrides the platform launcher; used by tests.
	command func(name string, args ...string) *exec.Cmd
}

// Open launches the browser on rawURL without waiting for it to exit.
func (o BrowserOpener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsafeURL, rawURL)
	}

	name, args := browserCommand(runtime.GOOS)
	mk := o.command
	if mk == nil {
		mk = exec.Command
	}
	cmd := mk(name, append(args, u.String())...)
	if err = cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func browserCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// RouteNavigator records the in-app routes the dashboard navigates to. When a web
// frontend is configured the route is also opened there.
type RouteNavigator struct {
	webURL string
	opener interface{ Open(string) error }
	logger zerolog.Logger

	mu      sync.Mutex
	history []string
}

// NewRouteNavigator returns a navigator that opens routes under webURL. An empty
// webURL only records them.
func NewRouteNavigator(webURL string, opener interface{ Open(string) error }, logger zerolog.Logger) *RouteNavigator {
	return &RouteNavigator{webURL: webURL, opener: opener, logger: logger}
}

// Push implements tui.Navigator.
func (n *RouteNavigator) Push(path string) {
	n.mu.Lock()
	n.history = append(n.history, path)
	n.mu.Unlock()

	if n.webURL == "" || n.opener == nil {
		n.logger.Debug().Str("route", path).Msg("route recorded")
		return
	}
	target := strings.TrimRight(n.webURL, "/") + path
	if err := n.opener.Open(target); err != nil {
		n.logger.Warn().Err(err).Str("url", target).Msg("opening route failed")
	}
}

// History returns the routes pushed so far, oldest first.
func (n *RouteNavigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}
