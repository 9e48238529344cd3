package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noise-contours/internal/metrics"
)

func newTestLoop(t *testing.T) *Loop {
	t.Helper()
	return NewLoop(newTestField(t), metrics.New())
}

func receive(t *testing.T, ch RenderChan) Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "channel closed")
		return s
	default:
		t.Fatal("no snapshot pending")
	}
	return Snapshot{}
}

func assertIdle(t *testing.T, ch RenderChan) {
	t.Helper()
	select {
	case s := <-ch:
		t.Fatalf("unexpected snapshot at tick %d", s.Tick)
	default:
	}
}

func TestLoopSendsOnJoinAndChange(t *testing.T) {
	l := newTestLoop(t)
	ch := l.AddViewer("a")
	assert.Equal(t, 1, l.Viewers())

	l.tick()
	first := receive(t, ch)
	require.NotNil(t, first.Frame)
	assert.Contains(t, first.HUD.Info, "octaves 5")
	assert.Empty(t, first.HUD.Status)

	l.tick()
	assertIdle(t, ch)

	l.InputChan() <- InputEvent{ViewerID: "a", Action: ActionOctavesUp}
	l.tick()
	s := receive(t, ch)
	assert.Contains(t, s.HUD.Info, "octaves 6")
	assert.Equal(t, "octaves+", s.HUD.Status)
	assert.False(t, s.HUD.Alert)
	assert.Greater(t, s.Revision, first.Revision)
	assert.NotSame(t, first.Frame, s.Frame)
}

func TestLoopLateJoinerGetsCurrentSnapshot(t *testing.T) {
	l := newTestLoop(t)
	a := l.AddViewer("a")
	l.tick()
	receive(t, a)

	b := l.AddViewer("b")
	l.tick()
	sb := receive(t, b)
	sa := receive(t, a)
	assert.Same(t, sa.Frame, sb.Frame, "no re-render for a join")
}

func TestLoopRejectedActionAlerts(t *testing.T) {
	l := newTestLoop(t)
	ch := l.AddViewer("a")
	require.NoError(t, l.field.SetOctaves(MaxOctaves))
	l.tick()
	receive(t, ch)

	l.InputChan() <- InputEvent{ViewerID: "a", Action: ActionOctavesUp}
	l.tick()
	s := receive(t, ch)
	assert.True(t, s.HUD.Alert)
	assert.Contains(t, s.HUD.Status, "rejected")
	assert.Contains(t, s.HUD.Info, "octaves 12")
}

func TestLoopStatusExpires(t *testing.T) {
	l := newTestLoop(t)
	ch := l.AddViewer("a")
	l.InputChan() <- InputEvent{Action: ActionToggleContours}
	l.tick()
	assert.Equal(t, "contours", receive(t, ch).HUD.Status)

	for i := 0; i < StatusDuration; i++ {
		l.tick()
	}
	s := l.Latest()
	assert.Empty(t, s.HUD.Status)
	assert.Contains(t, s.HUD.Info, "contours off")
}

func TestLoopSlowViewerDoesNotBlock(t *testing.T) {
	l := newTestLoop(t)
	l.AddViewer("slow")
	for i := 0; i < 5; i++ {
		l.InputChan() <- InputEvent{Action: ActionResmooth}
		l.tick()
	}
	assert.Equal(t, uint64(5), l.Latest().Tick)
}

func TestLoopRemoveViewerClosesChannel(t *testing.T) {
	l := newTestLoop(t)
	ch := l.AddViewer("a")
	l.RemoveViewer("a")
	l.RemoveViewer("a")
	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, l.Viewers())
}

func TestLoopRunStops(t *testing.T) {
	l := newTestLoop(t)
	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()
	l.Stop()
	l.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "regenerate", ActionRegenerate.String())
	assert.Equal(t, "unknown", Action(99).String())
}
