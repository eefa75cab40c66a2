package daemon

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/logging"
	"github.com/b/tabdeck/pkg/paths"
	"github.com/b/tabdeck/pkg/tabs"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("TABDECK_RUNTIME_DIR", t.TempDir())
	paths.ResetForTest()
	t.Cleanup(paths.ResetForTest)

	srv := NewServer("test", NewDispatcher(tabs.NewStore(), catalog.Default()), logging.Discard().Logger)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return srv
}

func dial(t *testing.T) *Client {
	t.Helper()
	c, err := Dial("test", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSendReturnsState(t *testing.T) {
	startServer(t)
	c := dial(t)

	st, err := c.Send(OpPayload{Op: OpAdd, MenuID: 6})
	require.NoError(t, err)
	require.Len(t, st.Snapshot.Left, 1)
	require.Equal(t, 6, st.Snapshot.ActiveMenu)
	require.Equal(t, uint64(1), st.Seq)

	// a no-op still answers with the unchanged state
	st, err = c.Send(OpPayload{Op: OpClose, TabID: 99, Pane: tabs.PaneLeft})
	require.NoError(t, err)
	require.Equal(t, uint64(1), st.Seq)
	require.Len(t, st.Snapshot.Left, 1)
}

func TestSendRejected(t *testing.T) {
	startServer(t)
	c := dial(t)

	_, err := c.Send(OpPayload{Op: OpAdd, MenuID: 404})
	require.ErrorIs(t, err, ErrRejected)

	require.NoError(t, c.Ping())
}

func TestSubscriberReceivesBroadcasts(t *testing.T) {
	srv := startServer(t)
	sub := dial(t)

	initial, err := sub.Subscribe()
	require.NoError(t, err)
	require.Zero(t, initial.Snapshot.Count())
	require.NotEmpty(t, sub.ID())
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	sender := dial(t)
	_, err = sender.Send(OpPayload{Op: OpAdd, MenuID: 3})
	require.NoError(t, err)
	_, err = sender.Send(OpPayload{Op: OpAdd, MenuID: 4, Pane: tabs.PaneRight})
	require.NoError(t, err)

	first, err := sub.Next()
	require.NoError(t, err)
	second, err := sub.Next()
	require.NoError(t, err)
	require.Equal(t, uint64(1), first.Seq)
	require.Equal(t, uint64(2), second.Seq)
	require.Equal(t, first.Seq, first.Snapshot.Version)
	require.Equal(t, tabs.ModeDualSplit, second.Snapshot.Mode)
}

func TestBroadcastDropsStaleSnapshots(t *testing.T) {
	srv := startServer(t)
	sub := dial(t)
	_, err := sub.Subscribe()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	srv.broadcast(tabs.Snapshot{Version: 5, NextTabID: 5})
	srv.broadcast(tabs.Snapshot{Version: 3, NextTabID: 3})
	srv.broadcast(tabs.Snapshot{Version: 5, NextTabID: 5})
	srv.broadcast(tabs.Snapshot{Version: 6, NextTabID: 6})

	got, err := sub.Next()
	require.NoError(t, err)
	require.Equal(t, uint64(5), got.Seq)
	got, err = sub.Next()
	require.NoError(t, err)
	require.Equal(t, uint64(6), got.Seq)
	require.Equal(t, 6, got.Snapshot.NextTabID)
}

func TestSecondDaemonRefused(t *testing.T) {
	startServer(t)

	// the pidfile names a live process that is not us
	require.NoError(t, os.WriteFile(PidPath("test"), []byte("1"), 0644))
	other := NewServer("test", NewDispatcher(tabs.NewStore(), catalog.Default()), logging.Discard().Logger)
	require.ErrorContains(t, other.Start(), "already running")
}


func TestCloseUnblocksNext(t *testing.T) {
	srv := startServer(t)
	c, err := Dial("test", time.Second)
	require.NoError(t, err)
	_, err = c.Subscribe()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Close()
	}()

	_, err = c.Next()
	require.Error(t, err)
	<-done
	require.Eventually(t, func() bool { return srv.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}
