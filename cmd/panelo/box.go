package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelo/internal/adapter/input"
	"github.com/jmylchreest/panelo/internal/adapter/output"
	"github.com/jmylchreest/panelo/internal/core"
	"github.com/jmylchreest/panelo/internal/layout"
	"github.com/jmylchreest/panelo/internal/model"
	"github.com/jmylchreest/panelo/internal/store"
)

var boxOpts struct {
	dashboard string

	// add
	title   string
	noFetch bool

	// remove
	stdin bool

	// layout
	file    string
	compact bool

	// move
	to string
}

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Manage the boxes on a dashboard",
	Long: `Add, remove, list, lay out and move boxes.

Box commands act on the first dashboard unless --dashboard is given.
Boxes are referenced by ID or 1-based index.`,
}

var boxAddCmd = &cobra.Command{
	Use:   "add <url...|->",
	Short: "Add websites as boxes",
	Long: `Add one or more websites as boxes. URLs without a scheme get https://.

The page title is fetched for each URL unless --no-fetch is set or title
fetching is disabled in the config; on failure --title (or the URL) is used.

Examples:
  panelo box add github.com
  panelo box add --dashboard Work --title "CI" https://ci.example.com
  cat urls.txt | panelo box add -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBoxAdd,
}

var boxRemoveCmd = &cobra.Command{
	Use:     "remove [box...]",
	Aliases: []string{"rm"},
	Short:   "Remove boxes",
	Long: `Remove boxes from a dashboard.

With --stdin, box IDs are scanned from each input line, so the output of
"panelo get --format ids --boxes" can be piped in.`,
	RunE: runBoxRemove,
}

var boxListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the boxes on a dashboard",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := selectDashboard(boxOpts.dashboard)
		if err != nil {
			return err
		}
		return output.NewPlainFormatter(output.DefaultFormatterOptions()).
			Format(os.Stdout, []model.Dashboard{d})
	},
}

var boxLayoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Apply grid positions and sizes from a file",
	Long: `Apply grid positions and sizes from a YAML or JSON file.

Each entry names a box by ID and gives its geometry on the 12-column grid:

  - {i: 01HY..., x: 0, y: 0, w: 6, h: 4}
  - {i: 01HZ..., x: 6, y: 0, w: 6, h: 4}

Boxes not listed keep their geometry. With --compact the result is packed
upward before it is stored.`,
	Args: cobra.NoArgs,
	RunE: runBoxLayout,
}

var boxMoveCmd = &cobra.Command{
	Use:   "move <box> --to <dashboard>",
	Short: "Move a box to another dashboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoxMove,
}

func init() {
	rootCmd.AddCommand(boxCmd)
	boxCmd.AddCommand(boxAddCmd, boxRemoveCmd, boxListCmd, boxLayoutCmd, boxMoveCmd)

	boxCmd.PersistentFlags().StringVarP(&boxOpts.dashboard, "dashboard", "d", "",
		"Dashboard ID, index or name (default: first dashboard)")

	boxAddCmd.Flags().StringVar(&boxOpts.title, "title", "",
		"Title to use when the page title cannot be fetched")
	boxAddCmd.Flags().BoolVar(&boxOpts.noFetch, "no-fetch", false,
		"Do not fetch page titles")

	boxRemoveCmd.Flags().BoolVar(&boxOpts.stdin, "stdin", false,
		"Read box IDs from stdin")

	boxLayoutCmd.Flags().StringVar(&boxOpts.file, "file", "-",
		"Layout file (- for stdin)")
	boxLayoutCmd.Flags().BoolVar(&boxOpts.compact, "compact", false,
		"Pack boxes upward after applying the layout")

	boxMoveCmd.Flags().StringVar(&boxOpts.to, "to", "",
		"Target dashboard ID, index or name")
	_ = boxMoveCmd.MarkFlagRequired("to")
}

func runBoxAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if _, err := selectDashboard(boxOpts.dashboard); err != nil {
		return err
	}
	if boxOpts.noFetch {
		boardStore.SetResolver(newResolver(cfg, true))
	}

	src := input.NewSource(args)
	urls, err := src.URLs(ctx)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs from %s", src.Name())
	}

	for _, u := range urls {
		fallback := boxOpts.title
		if fallback == "" {
			fallback = u
		}
		b, err := boardStore.AddBox(ctx, u, fallback)
		if errors.Is(err, store.ErrCapacityExceeded) {
			return fmt.Errorf("cannot add %s: maximum of %d boxes reached", u, model.MaxBoxes)
		}
		if err != nil {
			return fmt.Errorf("cannot add %s: %w", u, err)
		}
		fmt.Println(b.ID)
	}
	return nil
}

func runBoxRemove(cmd *cobra.Command, args []string) error {
	d, err := selectDashboard(boxOpts.dashboard)
	if err != nil {
		return err
	}

	refs := args
	if boxOpts.stdin {
		ids, err := readIDsFromStdin()
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		refs = append(refs, ids...)
	}
	if len(refs) == 0 {
		return fmt.Errorf("no boxes given")
	}

	// Resolve every reference first so indexes refer to the original order
	var ids []string
	for _, ref := range refs {
		b := core.LookupBox(d.Boxes, ref)
		if b == nil {
			logger.Warn("box not found", "ref", ref, "dashboard", d.Name)
			continue
		}
		ids = append(ids, b.ID)
	}

	removed := 0
	for _, id := range uniqueStrings(ids) {
		if boardStore.RemoveBox(id) {
			removed++
		}
	}

	fmt.Printf("removed %d boxes\n", removed)
	return nil
}

func runBoxLayout(cmd *cobra.Command, args []string) error {
	d, err := selectDashboard(boxOpts.dashboard)
	if err != nil {
		return err
	}

	r := os.Stdin
	if boxOpts.file != "-" {
		f, err := os.Open(boxOpts.file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	items, err := input.ReadLayout(r)
	if err != nil {
		return err
	}

	if boxOpts.compact {
		merged := layout.FromBoxes(layout.Apply(d.Boxes, items))
		items = layout.Compact(merged, model.GridColumns)
	}

	boardStore.ApplyLayout(items)
	return nil
}

func runBoxMove(cmd *cobra.Command, args []string) error {
	d, err := selectDashboard(boxOpts.dashboard)
	if err != nil {
		return err
	}
	b := core.LookupBox(d.Boxes, args[0])
	if b == nil {
		return fmt.Errorf("box %q not found in %s", args[0], d.Name)
	}
	target, err := lookupDashboard(boxOpts.to)
	if err != nil {
		return err
	}

	if err := boardStore.MoveBox(b.ID, target.ID); err != nil {
		return fmt.Errorf("cannot move box: %w", err)
	}
	return nil
}

// ULID regex pattern: 26 characters, Crockford base32
var ulidPattern = regexp.MustCompile(`\b[0-9A-HJKMNP-TV-Z]{26}\b`)

// readIDsFromStdin scans each stdin line for a box ID.
func readIDsFromStdin() ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if id := extractULID(scanner.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, scanner.Err()
}

// extractULID returns the first ULID found in line, or "".
func extractULID(line string) string {
	return ulidPattern.FindString(strings.TrimSpace(line))
}

func uniqueStrings(s []string) []string {
	seen := make(map[string]bool, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
