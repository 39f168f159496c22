package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tabdeck/tabdeck/internal/cli/styles"
	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

var (
	addContent string
	addPinned  bool
	addGroupID string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		tab, err := app.Manager.AddTab(app.Ctx(), tabs.AddTabInput{
			Title:    args[0],
			Content:  addContent,
			IsPinned: addPinned,
			GroupID:  entity.GroupID(addGroupID),
		})
		if err != nil {
			return err
		}
		fmt.Printf("added tab %s at position %d\n", tab.ID, tab.Order)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the tab strip",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(styles.RenderTabList(app.Theme, app.Manager.Tabs(), app.Manager.Groups()))
		return nil
	},
}

var closeCmd = &cobra.Command{
	Use:   "close <tab-id>",
	Short: "Remove a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return app.Manager.RemoveTab(app.Ctx(), entity.TabID(args[0]))
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate <tab-id>",
	Short: "Make a tab the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return app.Manager.ActivateTab(app.Ctx(), entity.TabID(args[0]))
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <tab-id> <index>",
	Short: "Move a tab to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		return app.Manager.MoveTab(app.Ctx(), entity.TabID(args[0]), index)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every tab and group",
	RunE: func(_ *cobra.Command, _ []string) error {
		return app.Manager.Clear(app.Ctx())
	},
}

func init() {
	addCmd.Flags().StringVar(&addContent, "content", "", "content reference for the tab")
	addCmd.Flags().BoolVar(&addPinned, "pinned", false, "pin the tab")
	addCmd.Flags().StringVar(&addGroupID, "group", "", "group id for the tab")

	rootCmd.AddCommand(addCmd, listCmd, closeCmd, activateCmd, moveCmd, clearCmd)
}
