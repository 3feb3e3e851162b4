package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelo/internal/adapter/output"
	"github.com/jmylchreest/panelo/internal/core"
	"github.com/jmylchreest/panelo/internal/model"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d"},
	Short:   "Manage dashboards",
	Long: `Create, rename, delete, reorder and list dashboards.

Dashboards are referenced by ID, 1-based index or name (case-insensitive).`,
}

var dashboardListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List dashboards",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := output.DefaultFormatterOptions()
		opts.ShowBoxes = false
		return output.NewPlainFormatter(opts).Format(os.Stdout, boardStore.Dashboards())
	},
}

var dashboardCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, ok := boardStore.CreateDashboard(args[0])
		if !ok {
			return fmt.Errorf("dashboard name cannot be empty")
		}
		fmt.Println(d.ID)
		return nil
	},
}

var dashboardRenameCmd = &cobra.Command{
	Use:   "rename <dashboard> <name>",
	Short: "Rename a dashboard",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := lookupDashboard(args[0])
		if err != nil {
			return err
		}
		if !boardStore.RenameDashboard(d.ID, args[1]) {
			return fmt.Errorf("dashboard name cannot be empty")
		}
		return nil
	},
}

var dashboardDeleteCmd = &cobra.Command{
	Use:     "delete <dashboard>",
	Aliases: []string{"rm"},
	Short:   "Delete a dashboard and its boxes",
	Long: `Delete a dashboard and all of its boxes.

Deleting the only dashboard replaces it with an empty "My Dashboard".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := lookupDashboard(args[0])
		if err != nil {
			return err
		}
		boardStore.DeleteDashboard(d.ID)
		logger.Debug("deleted dashboard", "id", d.ID, "boxes", len(d.Boxes))
		return nil
	},
}

var dashboardMoveCmd = &cobra.Command{
	Use:   "move <dashboard> <target>",
	Short: "Move a dashboard to the position of another",
	Long: `Move a dashboard to the position currently held by target, shifting
the dashboards in between.

Examples:
  # Make "Work" the first dashboard
  panelo dashboard move Work 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dragged, err := lookupDashboard(args[0])
		if err != nil {
			return err
		}
		target, err := lookupDashboard(args[1])
		if err != nil {
			return err
		}
		boardStore.ReorderDashboards(dragged.ID, target.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.AddCommand(dashboardListCmd, dashboardCreateCmd, dashboardRenameCmd,
		dashboardDeleteCmd, dashboardMoveCmd)
}

// lookupDashboard resolves a dashboard reference against the store.
func lookupDashboard(ref string) (model.Dashboard, error) {
	d := core.LookupDashboard(boardStore.Dashboards(), ref)
	if d == nil {
		return model.Dashboard{}, fmt.Errorf("dashboard %q not found", ref)
	}
	return *d, nil
}

// selectDashboard makes the referenced dashboard active for box commands.
// An empty ref keeps the current selection.
func selectDashboard(ref string) (model.Dashboard, error) {
	if ref == "" {
		d, ok := boardStore.Active()
		if !ok {
			return model.Dashboard{}, fmt.Errorf("no dashboard selected; use --dashboard")
		}
		return d, nil
	}
	d, err := lookupDashboard(ref)
	if err != nil {
		return model.Dashboard{}, err
	}
	boardStore.SelectDashboard(d.ID)
	return d, nil
}
