package tui

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/jmylchreest/panelo/internal/config"
)

// copyText copies text to the system clipboard.
// A configured command wins; otherwise the platform clipboard is used.
func copyText(text string, cfg *config.Config) error {
	cmd := clipboardCommand(cfg)
	if cmd == "" {
		if clipboard.Unsupported {
			return fmt.Errorf("no clipboard available")
		}
		return clipboard.WriteAll(text)
	}

	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return fmt.Errorf("invalid clipboard command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)

	return c.Run()
}

// clipboardCommand returns the configured clipboard command, if any.
func clipboardCommand(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	return strings.TrimSpace(cfg.Clipboard.Command)
}
