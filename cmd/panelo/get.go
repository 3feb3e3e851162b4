package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelo/internal/adapter/output"
	"github.com/jmylchreest/panelo/internal/core"
	"github.com/jmylchreest/panelo/internal/model"
)

var getOpts struct {
	// Filter options
	filter string
	search string

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format    string
	field     string
	template  string
	boxesOnly bool
}

var getCmd = &cobra.Command{
	Use:   "get [dashboard] [box]",
	Short: "Output dashboards and boxes",
	Long: `Output dashboards and their boxes in various formats.

Without arguments, outputs every dashboard. A dashboard may be given by ID,
1-based index or name. A box within it may be given by ID or 1-based index.
A line picked from --format dmenu output selects that box directly.

Examples:
  # List all dashboards and their boxes
  panelo get

  # Output one dashboard as JSON
  panelo get Work --format json

  # Print the URL of the second box on the first dashboard
  panelo get 1 2 --field url

  # Boxes on github.com, sorted by title
  panelo get --filter "host=github.com" --sort title

  # Pick a box with fuzzel and open it
  xdg-open "$(panelo get "$(panelo get --format dmenu | fuzzel -d)" --field url)"`,
	Args: cobra.MaximumNArgs(2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	// Filter flags
	getCmd.Flags().StringVar(&getOpts.filter, "filter", "",
		"Filter boxes (e.g. host=github.com,width>=6)")
	getCmd.Flags().StringVarP(&getOpts.search, "search", "s", "",
		"Search box URLs and titles")

	// Sort flags
	getCmd.Flags().StringVar(&getOpts.sortBy, "sort", "order",
		"Sort boxes by field (order, position, title, url)")
	getCmd.Flags().StringVar(&getOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")

	// Output flags
	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, ids, dmenu)")
	getCmd.Flags().StringVar(&getOpts.field, "field", "",
		"Output single field from a box (id, url, title, position, all)")
	getCmd.Flags().StringVar(&getOpts.template, "template", "",
		"Custom Go template for output formatting")
	getCmd.Flags().BoolVar(&getOpts.boxesOnly, "boxes", false,
		"With --format ids, print box IDs instead of dashboard IDs")
}

func runGet(cmd *cobra.Command, args []string) error {
	dashboards := boardStore.Dashboards()

	if len(args) == 1 && strings.Contains(args[0], "|") {
		filtered, err := applyBoxFilters(dashboards)
		if err != nil {
			return err
		}
		return handleDmenuSelection(filtered, args[0])
	}

	if len(args) > 0 {
		d := core.LookupDashboard(dashboards, args[0])
		if d == nil {
			return fmt.Errorf("dashboard %q not found", args[0])
		}
		dashboards = []model.Dashboard{*d}
	}

	var err error
	dashboards, err = applyBoxFilters(dashboards)
	if err != nil {
		return err
	}

	if len(args) > 1 {
		return handleBoxLookup(dashboards[0], args[1])
	}

	formatter, err := createFormatter()
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, dashboards)
}

// applyBoxFilters narrows and orders the boxes of each dashboard.
func applyBoxFilters(dashboards []model.Dashboard) ([]model.Dashboard, error) {
	var expr *core.FilterExpr
	if getOpts.filter != "" {
		var err error
		expr, err = core.ParseFilter(getOpts.filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
	}

	field, err := core.ParseSortField(getOpts.sortBy)
	if err != nil {
		return nil, err
	}
	order, err := core.ParseSortOrder(getOpts.sortOrder)
	if err != nil {
		return nil, err
	}

	for i := range dashboards {
		boxes := dashboards[i].Boxes
		if expr != nil {
			boxes = core.FilterBoxes(boxes, expr)
		}
		if getOpts.search != "" {
			boxes = core.SearchBoxes(boxes, getOpts.search)
		}
		core.SortBoxes(boxes, core.SortOptions{Field: field, Order: order})
		dashboards[i].Boxes = boxes
	}
	return dashboards, nil
}

// handleBoxLookup outputs a single box.
func handleBoxLookup(d model.Dashboard, ref string) error {
	b := core.LookupBox(d.Boxes, ref)
	if b == nil {
		return fmt.Errorf("box %q not found in %s", ref, d.Name)
	}

	if getOpts.field != "" {
		fmt.Println(output.FormatField(b, getOpts.field))
		return nil
	}

	return outputBox(b)
}

// handleDmenuSelection outputs the box on a line picked from dmenu output.
// Dmenu lines are numbered across all dashboards.
func handleDmenuSelection(dashboards []model.Dashboard, line string) error {
	ref := parseDmenuSelection(line)
	idx, err := strconv.Atoi(ref)
	if err != nil || idx < 1 {
		return fmt.Errorf("not a dmenu selection: %q", line)
	}

	var all []model.Box
	for _, d := range dashboards {
		all = append(all, d.Boxes...)
	}
	b := core.LookupBox(all, ref)
	if b == nil {
		return fmt.Errorf("box %d not found", idx)
	}

	if getOpts.field != "" {
		fmt.Println(output.FormatField(b, getOpts.field))
		return nil
	}
	return outputBox(b)
}

func outputBox(b *model.Box) error {
	return output.NewJSONFormatter(output.DefaultFormatterOptions()).FormatBox(os.Stdout, b)
}

// parseDmenuSelection extracts the box index from a dmenu line such as
// "2 | Work | GitHub | https://github.com". Anything else is returned as is.
func parseDmenuSelection(selection string) string {
	selection = strings.TrimSpace(selection)
	if !strings.Contains(selection, "|") {
		return selection
	}
	parts := strings.SplitN(selection, "|", 2)
	return strings.TrimSpace(parts[0])
}

// createFormatter creates the output formatter based on options.
func createFormatter() (output.Formatter, error) {
	format, err := output.ParseFormat(getOpts.format)
	if err != nil {
		return nil, err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = getOpts.template
	opts.ActiveID = boardStore.ActiveID()
	opts.BoxesOnly = getOpts.boxesOnly

	if err := output.ValidateTemplate(opts.Template); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	return output.NewFormatter(format, opts), nil
}
