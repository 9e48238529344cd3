package scene

import (
	"fmt"
	"log"
	"sync"
	"time"

	"noise-contours/internal/metrics"
	"noise-contours/internal/render"
)

const InputChanSize = 256

// Snapshot is what a viewer draws. Frame is never modified after it is sent.
type Snapshot struct {
	Frame    *render.Frame
	HUD      render.HUD
	Revision uint64
	Tick     uint64
}

// RenderChan is the per-viewer channel that receives snapshots.
type RenderChan chan Snapshot

// Loop applies viewer input to the shared Field on a fixed tick and
// broadcasts a new Snapshot whenever the picture changes.
type Loop struct {
	field     *Field
	rec       *metrics.Recorder
	inputCh   chan InputEvent
	tickCount uint64

	mu      sync.RWMutex
	viewers map[string]RenderChan
	latest  Snapshot
	joined  bool // a viewer is waiting for its first snapshot

	status      string
	alert       bool
	statusUntil uint64
	shownRev    uint64
	shownStatus string
	rendered    bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop around f. rec may be nil.
func NewLoop(f *Field, rec *metrics.Recorder) *Loop {
	return &Loop{
		field:   f,
		rec:     rec,
		inputCh: make(chan InputEvent, InputChanSize),
		viewers: make(map[string]RenderChan),
		stopCh:  make(chan struct{}),
	}
}

// InputChan returns the shared input channel for sessions to send events.
func (l *Loop) InputChan() chan<- InputEvent {
	return l.inputCh
}

// AddViewer registers a viewer and returns its render channel. The viewer
// receives the current snapshot on the next tick.
func (l *Loop) AddViewer(id string) RenderChan {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(RenderChan, 2)
	l.viewers[id] = ch
	l.joined = true
	l.rec.SessionOpened()
	return ch
}

// RemoveViewer unregisters a viewer and closes its channel.
func (l *Loop) RemoveViewer(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ch, ok := l.viewers[id]; ok {
		close(ch)
		delete(l.viewers, id)
		l.rec.SessionClosed()
	}
}

// Viewers returns the number of connected viewers.
func (l *Loop) Viewers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.viewers)
}

// Run starts the loop. Blocks until Stop is called.
func (l *Loop) Run() {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

// Stop shuts down the loop. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *Loop) tick() {
	// Drain all pending input events
	for {
		select {
		case ev := <-l.inputCh:
			l.apply(ev)
		default:
			goto drained
		}
	}
drained:

	l.tickCount++

	if err := l.field.Update(); err != nil {
		log.Printf("Field update failed: %v", err)
		l.setStatus(err.Error(), true)
	}
	if l.status != "" && l.tickCount >= l.statusUntil {
		l.status, l.alert = "", false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	changed := !l.rendered || l.field.Revision() != l.shownRev || l.status != l.shownStatus
	if changed {
		l.latest = l.snapshot()
	} else if !l.joined {
		return
	}
	l.joined = false

	// Non-blocking send to each render channel
	for _, ch := range l.viewers {
		select {
		case ch <- l.latest:
		default:
			l.rec.SnapshotDropped()
		}
	}
}

// snapshot renders the field. Callers hold l.mu.
func (l *Loop) snapshot() Snapshot {
	l.rendered = true
	l.shownRev = l.field.Revision()
	l.shownStatus = l.status
	l.rec.FrameRendered()
	return Snapshot{
		Frame: l.field.Frame(),
		HUD: render.HUD{
			Info:   l.field.Settings().Info(),
			Status: l.status,
			Alert:  l.alert,
		},
		Revision: l.shownRev,
		Tick:     l.tickCount,
	}
}

// Latest returns the most recent snapshot.
func (l *Loop) Latest() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.latest
}

func (l *Loop) setStatus(msg string, alert bool) {
	l.status = msg
	l.alert = alert
	l.statusUntil = l.tickCount + uint64(StatusDuration)
}

// apply performs one action. Rejected adjustments leave the field unchanged
// and surface as an alert in the HUD.
func (l *Loop) apply(ev InputEvent) {
	f := l.field
	var err error
	switch ev.Action {
	case ActionRegenerate:
		f.Regenerate()
	case ActionResmooth:
		f.Resmooth()
	case ActionOctavesUp:
		err = f.AdjustOctaves(1)
	case ActionOctavesDown:
		err = f.AdjustOctaves(-1)
	case ActionPersistenceUp:
		err = f.AdjustPersistence(PersistenceStep)
	case ActionPersistenceDown:
		err = f.AdjustPersistence(-PersistenceStep)
	case ActionThresholdUp:
		err = f.AdjustThreshold(ThresholdStep)
	case ActionThresholdDown:
		err = f.AdjustThreshold(-ThresholdStep)
	case ActionToggleInterpolation:
		f.ToggleInterpolation()
	case ActionToggleDimensions:
		f.ToggleDimensions()
	case ActionDimensions1:
		f.SetDimensions(1)
	case ActionDimensions2:
		f.SetDimensions(2)
	case ActionToggleContours:
		f.ToggleContours()
	default:
		return
	}

	if err != nil {
		l.setStatus(fmt.Sprintf("%s rejected: %v", ev.Action, err), true)
		return
	}
	l.setStatus(ev.Action.String(), false)
}
