package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

var (
	groupColor    string
	groupIcon     string
	groupKeepTabs bool
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage tab groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		group, err := app.Manager.CreateGroup(app.Ctx(), tabs.CreateGroupInput{
			Title: args[0],
			Icon:  groupIcon,
			Color: groupColor,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created group %s\n", group.ID)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups and their member counts",
	RunE: func(_ *cobra.Command, _ []string) error {
		groups := app.Manager.Groups()
		if len(groups) == 0 {
			fmt.Println(app.Theme.Subtle.Render("no groups"))
			return nil
		}
		for _, group := range groups {
			members, err := app.Manager.GroupTabs(group.ID)
			if err != nil {
				return err
			}
			collapsed := ""
			if group.IsCollapsed {
				collapsed = " (collapsed)"
			}
			fmt.Printf("%2d  %s%s  %d tabs  %s\n",
				group.Order,
				app.Theme.Normal.Render(group.Title),
				collapsed,
				len(members),
				app.Theme.Subtle.Render(string(group.ID)),
			)
		}
		return nil
	},
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove <group-id>",
	Short: "Remove a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return app.Manager.RemoveGroup(app.Ctx(), entity.GroupID(args[0]), groupKeepTabs)
	},
}

var groupToggleCmd = &cobra.Command{
	Use:   "toggle <group-id>",
	Short: "Toggle a group's collapsed state",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		group, err := app.Manager.ToggleGroupCollapse(app.Ctx(), entity.GroupID(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("group %s collapsed=%v\n", group.ID, group.IsCollapsed)
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupIcon, "icon", "", "icon name for the group")
	groupCreateCmd.Flags().StringVar(&groupColor, "color", "", "display color for the group")
	groupRemoveCmd.Flags().BoolVar(&groupKeepTabs, "keep-tabs", true, "keep member tabs, clearing their group")

	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupRemoveCmd, groupToggleCmd)
	rootCmd.AddCommand(groupCmd)
}
