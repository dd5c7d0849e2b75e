package commands

import (
	"fmt"
	"os/exec"

	"github.com/festivo/festivo/internal/api"
	"github.com/festivo/festivo/internal/config"
	"github.com/festivo/festivo/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// runtime wires the shared client-side pieces: config, backend client and
// session manager. The client reads the bearer token through the manager,
// and the manager validates persisted tokens through the client.
type runtime struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Manager
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := session.NewFileStore(cfg.Home)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	var manager *session.Manager
	client := api.New(api.Config{
		BaseURL:  cfg.APIURL,
		Timeout:  cfg.Timeout(),
		CacheDir: cfg.CacheDir,
		Token: func() string {
			if manager == nil {
				return ""
			}
			return manager.Token()
		},
	})
	manager = session.NewManager(store, client)

	return &runtime{cfg: cfg, client: client, session: manager}, nil
}

// openBrowser hands a URL to the host's default browser. Best-effort: the
// URL is always printed too, so a headless host loses nothing.
func openBrowser(url string) bool {
	for _, opener := range [][]string{{"xdg-open"}, {"open"}} {
		if _, err := exec.LookPath(opener[0]); err != nil {
			continue
		}
		return exec.Command(opener[0], url).Start() == nil
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
