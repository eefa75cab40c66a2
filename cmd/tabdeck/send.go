package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/b/tabdeck/pkg/colors"
	"github.com/b/tabdeck/pkg/daemon"
	"github.com/b/tabdeck/pkg/tabs"
)

var sendFlags struct {
	menuID    int
	pane      string
	tabID     int
	overTabID int
	fromPane  string
	force     bool
	jsonOut   bool
}

var sendCmd = &cobra.Command{
	Use:   "send <op>",
	Short: "Apply one operation on a running daemon and print the result",
	Long:  "Ops: " + strings.Join(daemon.Ops, ", "),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pane, err := paneFlag("pane", sendFlags.pane)
		if err != nil {
			return err
		}
		from, err := paneFlag("from", sendFlags.fromPane)
		if err != nil {
			return err
		}
		op := daemon.OpPayload{
			Op:        args[0],
			MenuID:    sendFlags.menuID,
			Pane:      pane,
			TabID:     sendFlags.tabID,
			OverTabID: sendFlags.overTabID,
			FromPane:  from,
			Force:     sendFlags.force,
		}

		client, err := daemon.Dial(session, 2*time.Second)
		if err != nil {
			return err
		}
		defer client.Close()

		st, err := client.Send(op)
		if err != nil {
			return err
		}
		log.Debug("op sent", "op", op.Op, "seq", st.Seq)
		if sendFlags.jsonOut {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		printSnapshot(snapshotOutput(cmd.OutOrStdout()), st.Snapshot, colors.HeaderPalette(cfg.PaneHeader))
		return nil
	},
}

func init() {
	f := sendCmd.Flags()
	f.IntVar(&sendFlags.menuID, "menu", 0, "menu id (add)")
	f.StringVar(&sendFlags.pane, "pane", "", "target pane: left, right, upper, lower")
	f.IntVar(&sendFlags.tabID, "tab", 0, "tab id")
	f.IntVar(&sendFlags.overTabID, "over", 0, "tab id to reorder or drop onto")
	f.StringVar(&sendFlags.fromPane, "from", "", "source pane (drop)")
	f.BoolVar(&sendFlags.force, "force", false, "always open a new tab (add)")
	f.BoolVar(&sendFlags.jsonOut, "json", false, "print the state as JSON")
}

// paneFlag validates an optional pane flag value.
func paneFlag(name, value string) (tabs.Pane, error) {
	if value == "" {
		return "", nil
	}
	p, ok := tabs.ParsePane(value)
	if !ok {
		return "", fmt.Errorf("invalid --%s %q: want left, right, upper or lower", name, value)
	}
	return p, nil
}

// snapshotOutput wraps w with the color profile detected for it; pipes and
// dumb terminals get plain text.
func snapshotOutput(w io.Writer) *termenv.Output {
	return termenv.NewOutput(w)
}

// printSnapshot writes one line per populated pane, marking active tabs with '*'.
// Active tabs are drawn in the header palette's active colors.
func printSnapshot(out *termenv.Output, snap tabs.Snapshot, pal colors.Palette) {
	fmt.Fprintf(out, "mode: %s  active menu: %d  next tab: %d\n", snap.Mode, snap.ActiveMenu, snap.NextTabID)
	for _, p := range tabs.Panes {
		list := snap.Tabs(p)
		if len(list) == 0 {
			continue
		}
		parts := make([]string, 0, len(list))
		for _, t := range list {
			label := fmt.Sprintf("%d:%s", t.TabID, t.Title)
			if t.TabID == snap.ActiveTabID(p) {
				label = out.String("*" + label).
					Foreground(out.Color(pal.ActiveFg)).
					Background(out.Color(pal.ActiveBg)).
					Bold().
					String()
			}
			parts = append(parts, label)
		}
		name := out.String(fmt.Sprintf("%-6s", p)).Bold().String()
		fmt.Fprintf(out, "%s %s\n", name, strings.Join(parts, "  "))
	}
}
