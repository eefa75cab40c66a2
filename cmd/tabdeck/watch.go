package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/b/tabdeck/pkg/colors"
	"github.com/b/tabdeck/pkg/daemon"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Subscribe to a daemon and print every state change",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, err := daemon.Dial(session, 2*time.Second)
		if err != nil {
			return err
		}
		st, err := client.Subscribe()
		if err != nil {
			client.Close()
			return err
		}
		// Next blocks on the socket, so closing it is how a signal ends the loop.
		go func() {
			<-ctx.Done()
			client.Close()
		}()

		out := snapshotOutput(cmd.OutOrStdout())
		pal := colors.HeaderPalette(cfg.PaneHeader)
		for {
			fmt.Fprintf(out, "-- seq %d\n", st.Seq)
			printSnapshot(out, st.Snapshot, pal)
			st, err = client.Next()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	},
}
