// Package clipboard writes text to the host clipboard on a best-effort
// basis. The primary mechanism is whichever system clipboard tool is
// installed; the fallback emits an OSC 52 escape sequence so terminals
// without a clipboard tool (SSH sessions, containers) still receive the
// text.
package clipboard

import (
	"context"
	"encoding/base64"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Clipboard tools probed in order. Each entry is the command plus its
// copy-from-stdin arguments.
var copyTools = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"pbcopy"},
}

// Copier attempts clipboard writes. The zero value is not usable; call New.
type Copier struct {
	lookPath func(string) (string, error)
	runner   func(ctx context.Context, name string, args []string, stdin string) error
	terminal io.Writer
}

// New creates a Copier targeting the host clipboard, with the controlling
// terminal as the escape-sequence fallback.
func New() *Copier {
	return &Copier{
		lookPath: exec.LookPath,
		runner:   runTool,
		terminal: nil, // opened lazily, the tty may not exist
	}
}

// Copy writes text to the clipboard, primary mechanism first, fallback
// second. Reports whether either succeeded. Never returns an error:
// clipboard delivery is best-effort by contract.
func (c *Copier) Copy(ctx context.Context, text string) bool {
	if c.copyWithTool(ctx, text) {
		return true
	}
	return c.copyWithEscape(text)
}

// copyWithTool runs the first installed clipboard tool.
func (c *Copier) copyWithTool(ctx context.Context, text string) bool {
	for _, tool := range copyTools {
		if _, err := c.lookPath(tool[0]); err != nil {
			continue
		}

		if err := c.runner(ctx, tool[0], tool[1:], text); err != nil {
			log.Debug().Err(err).Str("tool", tool[0]).Msg("clipboard tool failed")
			return false
		}

		log.Debug().Str("tool", tool[0]).Msg("copied to clipboard")
		return true
	}
	return false
}

// copyWithEscape writes an OSC 52 sequence to the controlling terminal,
// asking the terminal emulator itself to set the clipboard.
func (c *Copier) copyWithEscape(text string) bool {
	out := c.terminal
	if out == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			log.Debug().Err(err).Msg("no controlling terminal for clipboard fallback")
			return false
		}
		defer tty.Close()
		out = tty
	}

	var seq strings.Builder
	seq.WriteString("\x1b]52;c;")
	seq.WriteString(base64.StdEncoding.EncodeToString([]byte(text)))
	seq.WriteString("\x07")

	if _, err := io.WriteString(out, seq.String()); err != nil {
		log.Debug().Err(err).Msg("clipboard escape write failed")
		return false
	}

	log.Debug().Msg("copied to clipboard via OSC 52")
	return true
}

func runTool(ctx context.Context, name string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}
