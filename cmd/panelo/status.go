package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelo/internal/core"
	"github.com/jmylchreest/panelo/internal/model"
	"github.com/jmylchreest/panelo/internal/store"
)

var statusOpts struct {
	waybar bool
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text       string `json:"text"`
	Alt        string `json:"alt,omitempty"`
	Tooltip    string `json:"tooltip,omitempty"`
	Class      string `json:"class,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
}

// storageInfo describes where dashboards are stored.
type storageInfo struct {
	Backend  string
	Location string
	Size     string // Empty when unknown
	Modified string // Empty when unknown
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage and dashboard summary",
	Long: `Show the storage backend in use and a summary of the dashboards.

With --waybar, output Waybar's custom module JSON instead:

  "custom/panelo": {
    "exec": "panelo status --waybar",
    "interval": 30,
    "return-type": "json",
    "on-click": "panelo tui"
  }`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.waybar, "waybar", false,
		"Output Waybar-compatible JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	dashboards := boardStore.Dashboards()
	if statusOpts.waybar {
		return outputStatus(os.Stdout, generateStatus(dashboards))
	}
	return writeSummary(os.Stdout, describeStorage(kvBackend), dashboards)
}

// describeStorage reports backend details; file size and age come from the
// storage file when there is one.
func describeStorage(kv store.KV) storageInfo {
	info := storageInfo{Backend: kv.Name()}

	switch b := kv.(type) {
	case *store.FileKV:
		info.Location = b.Path()
		if st, err := os.Stat(b.Path()); err == nil {
			info.Size = humanize.Bytes(uint64(st.Size()))
			info.Modified = humanize.Time(st.ModTime())
		}
	case *store.RedisKV:
		info.Location = fmt.Sprintf("%s (prefix %q)", b.Addr(), b.Prefix())
	}
	return info
}

// writeSummary prints the human-readable status.
func writeSummary(w io.Writer, info storageInfo, dashboards []model.Dashboard) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Backend:    %s\n", info.Backend)
	if info.Location != "" {
		fmt.Fprintf(&sb, "Location:   %s\n", info.Location)
	}
	if info.Size != "" {
		fmt.Fprintf(&sb, "Size:       %s\n", info.Size)
	}
	if info.Modified != "" {
		fmt.Fprintf(&sb, "Modified:   %s\n", info.Modified)
	}
	fmt.Fprintf(&sb, "Dashboards: %d\n", len(dashboards))
	fmt.Fprintf(&sb, "Boxes:      %d\n", core.TotalBoxes(dashboards))

	full := 0
	for i := range dashboards {
		if dashboards[i].IsFull() {
			full++
		}
	}
	if full > 0 {
		fmt.Fprintf(&sb, "Full:       %d (at %d boxes)\n", full, model.MaxBoxes)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// generateStatus creates a WaybarStatus from the dashboards.
func generateStatus(dashboards []model.Dashboard) WaybarStatus {
	total := core.TotalBoxes(dashboards)
	if total == 0 {
		return WaybarStatus{
			Text:  "",
			Alt:   "empty",
			Class: "empty",
		}
	}

	// Class reflects the fullest dashboard
	fullest := 0
	lines := make([]string, 0, len(dashboards))
	for _, d := range dashboards {
		fullest = max(fullest, len(d.Boxes))
		lines = append(lines, fmt.Sprintf("%s: %d/%d", d.Name, len(d.Boxes), model.MaxBoxes))
	}

	class := "normal"
	if fullest >= model.MaxBoxes {
		class = "full"
	}

	return WaybarStatus{
		Text:       fmt.Sprintf("%d", total),
		Alt:        class,
		Tooltip:    strings.Join(lines, "\n"),
		Class:      class,
		Percentage: fullest * 100 / model.MaxBoxes,
	}
}

// outputStatus writes the status as JSON.
func outputStatus(w io.Writer, status WaybarStatus) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(status)
}
