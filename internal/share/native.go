package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
)

// Sharer is the host's native share capability. Implementations report a
// user cancellation as delivered=false with a nil error; err is reserved
// for genuine failures.
type Sharer interface {
	Supported() bool
	ShareText(ctx context.Context, title, text string) (delivered bool, err error)
	ShareFile(ctx context.Context, title, text, filePath string) (delivered bool, err error)
}

// Native drives best-effort delivery through a Sharer. When the content
// carries an image it is fetched and attached first; every failure along
// the way falls back rather than surfacing.
type Native struct {
	sharer Sharer
	client *http.Client
}

// NewNative creates a best-effort native share path. A nil client uses
// http.DefaultClient for image fetches.
func NewNative(sharer Sharer, client *http.Client) *Native {
	if client == nil {
		client = http.DefaultClient
	}
	return &Native{sharer: sharer, client: client}
}

// Share attempts native delivery of the content. Returns whether the share
// sheet reported delivery; an unsupported host or a cancellation is false,
// never an error.
func (n *Native) Share(ctx context.Context, c Content) bool {
	if n.sharer == nil || !n.sharer.Supported() {
		log.Debug().Msg("native share unsupported on this host")
		return false
	}

	text := fmt.Sprintf("%s\n\n%s\n\n%s", c.Title, c.Description, c.URL)

	if c.Image != "" {
		if filePath, cleanup, err := n.fetchImage(ctx, c.Image); err == nil {
			defer cleanup()
			delivered, err := n.sharer.ShareFile(ctx, c.Title, text, filePath)
			if err == nil {
				return delivered
			}
			log.Debug().Err(err).Msg("attachment share failed, falling back to text")
		} else {
			log.Debug().Err(err).Msg("image fetch failed, falling back to text")
		}
	}

	delivered, err := n.sharer.ShareText(ctx, c.Title, text)
	if err != nil {
		log.Debug().Err(err).Msg("native text share failed")
		return false
	}
	return delivered
}

// fetchImage downloads the image to a temporary file. One attempt only.
func (n *Native) fetchImage(ctx context.Context, imageURL string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("image fetch returned HTTP %d", resp.StatusCode)
	}

	pattern := "festivo-share-*" + path.Ext(imageURL)
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, err
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	tmp.Close()

	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// CommandSharer invokes a host share command (termux-share on Android
// hosts). Exit status 1 is how the tool reports a dismissed share sheet, so
// it maps to "not delivered" rather than an error.
type CommandSharer struct {
	command  string
	lookPath func(string) (string, error)
	runner   func(ctx context.Context, name string, args []string, stdin string) error
}

// NewCommandSharer creates a sharer for the named command, or the host
// default when empty.
func NewCommandSharer(command string) *CommandSharer {
	if command == "" {
		command = "termux-share"
	}
	return &CommandSharer{
		command:  command,
		lookPath: exec.LookPath,
		runner:   runCommand,
	}
}

func (s *CommandSharer) Supported() bool {
	_, err := s.lookPath(s.command)
	return err == nil
}

func (s *CommandSharer) ShareText(ctx context.Context, title, text string) (bool, error) {
	return s.run(ctx, []string{"--title", title}, text)
}

func (s *CommandSharer) ShareFile(ctx context.Context, title, text, filePath string) (bool, error) {
	return s.run(ctx, []string{"--title", title, filePath}, text)
}

func (s *CommandSharer) run(ctx context.Context, args []string, stdin string) (bool, error) {
	err := s.runner(ctx, s.command, args, stdin)
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		log.Debug().Str("command", s.command).Msg("share cancelled by user")
		return false, nil
	}
	return false, err
}

func runCommand(ctx context.Context, name string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}
