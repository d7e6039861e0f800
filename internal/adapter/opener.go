package adapter

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// startCommand starts a process without waiting for it. Swapped out in tests.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener hands document URLs to an external PDF viewer or browser
type Opener struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger
}

// NewOpener creates an Opener. An empty command uses the system default handler.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		logger:  logger,
	}
}

// Open launches url in the configured viewer or the system default
func (o *Opener) Open(url string) error {
	if url == "" {
		return errors.New("document has no URL")
	}

	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		o.logger.Info("opening with configured viewer", "command", o.command, "args", args)
		return startCommand(o.command, args...)
	}

	name, args := defaultOpenCommand(runtime.GOOS, url)
	o.logger.Info("opening with system default", "os", runtime.GOOS, "url", url)
	return startCommand(name, args...)
}

// defaultOpenCommand returns the system handler invocation for goos
func defaultOpenCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		// cmd /c start mangles & in query strings
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
