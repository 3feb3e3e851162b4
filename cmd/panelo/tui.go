package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelo/internal/store"
	"github.com/jmylchreest/panelo/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI",
	Long: `Launch the interactive terminal user interface.

The TUI provides:
  - Dashboard list with create, rename, delete and reorder
  - Grid view of the boxes on a dashboard
  - Keyboard move and resize of boxes
  - Search and filter expressions (e.g. host=github.com)
  - Copy box URL to clipboard
  - Live reload when another panelo process writes the storage file

Key bindings (dashboard list):
  enter       Open dashboard
  n           New dashboard
  R           Rename dashboard
  x           Delete dashboard (asks for y)
  K/J         Move dashboard up/down

Key bindings (dashboard):
  a           Add a website
  d           Remove focused box
  tab         Focus next box
  h/j/k/l     Move focused box
  H/J/K/L     Resize focused box
  c           Copy URL to clipboard
  /           Search boxes
  esc         Back to dashboard list
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Only the file backend can be watched for outside writes
	var watchPath string
	if fkv, ok := kvBackend.(*store.FileKV); ok {
		watchPath = fkv.Path()
	}

	return tui.Run(tui.RunOptions{
		Config:    getConfig(),
		Store:     getStore(),
		WatchPath: watchPath,
	})
}
