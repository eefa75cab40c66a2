package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/b/tabdeck/pkg/grouping"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog menus grouped by the configured groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, group := range grouping.GroupMenus(cat.All(), cfg.Groups) {
			header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(group.Color))
			fmt.Fprintln(out, header.Render(group.Name))
			for _, m := range group.Menus {
				dup := ""
				if m.Duplicatable {
					dup = " (dup)"
				}
				fmt.Fprintf(out, "  %3d  %s%s\n", m.ID, m.Title, dup)
			}
		}
		return nil
	},
}
