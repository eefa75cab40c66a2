package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/b/tabdeck/pkg/config"
	"github.com/b/tabdeck/pkg/grouping"
	"github.com/b/tabdeck/pkg/paths"
)

var groupColor string

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage the sidebar menu groups in the config file",
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups in match order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, g := range cfg.Groups {
			name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(g.Color)).Render(g.Name)
			fmt.Fprintf(out, "%s  %s  %s\n", name, g.Color, g.Pattern)
		}
		return nil
	},
}

var groupShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one group and the catalog menus it currently holds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := config.FindGroup(cfg, args[0])
		if g == nil {
			return fmt.Errorf("%w: %s", config.ErrGroupNotFound, args[0])
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s  %s\n", g.Name, g.Color, g.Pattern)
		for _, grouped := range grouping.GroupMenus(cat.All(), cfg.Groups) {
			if grouped.Name != g.Name {
				continue
			}
			for _, m := range grouped.Menus {
				fmt.Fprintf(out, "  %3d  %s\n", m.ID, m.Title)
			}
		}
		return nil
	},
}

var groupAddCmd = &cobra.Command{
	Use:   "add <name> <pattern>",
	Short: "Add a group ahead of the Default catch-all",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.AddGroup(cfg, config.Group{Name: args[0], Pattern: args[1], Color: groupColor}); err != nil {
			return fmt.Errorf("add group %s: %w", args[0], err)
		}
		if err := saveConfig(); err != nil {
			return err
		}
		log.Info("group added", "group", args[0], "config", cfgFile)
		fmt.Fprintf(cmd.OutOrStdout(), "added group %s\n", args[0])
		return nil
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a group; its menus fall back to Default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DeleteGroup(cfg, args[0]); err != nil {
			return fmt.Errorf("delete group %s: %w", args[0], err)
		}
		if err := saveConfig(); err != nil {
			return err
		}
		log.Info("group deleted", "group", args[0], "config", cfgFile)
		fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", args[0])
		return nil
	},
}

func init() {
	groupAddCmd.Flags().StringVar(&groupColor, "color", "#7f8c8d", "group color (hex)")
	groupCmd.AddCommand(groupListCmd, groupShowCmd, groupAddCmd, groupDeleteCmd)
}

// saveConfig writes cfg back to cfgFile, creating the default config
// directory on first use.
func saveConfig() error {
	if filepath.Dir(cfgFile) == paths.ConfigDir() {
		if _, err := paths.EnsureConfigDir(); err != nil {
			return err
		}
	}
	return config.SaveConfig(cfgFile, cfg)
}
