package server

import (
	"fmt"
	"io"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"

	"noise-contours/internal/render"
	"noise-contours/internal/scene"
)

// SSHServer wraps the SSH listener and scene loop integration.
type SSHServer struct {
	loop    *scene.Loop
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, loop *scene.Loop) *SSHServer {
	return &SSHServer{
		loop:    loop,
		addr:    addr,
		hostKey: hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "anonymous"
	}

	viewerID := uuid.NewString()
	renderCh := s.loop.AddViewer(viewerID)

	log.Printf("Viewer connected: %s (%s) from %s", username, viewerID, sess.RemoteAddr())
	defer func() {
		s.loop.RemoveViewer(viewerID)
		log.Printf("Viewer disconnected: %s (%s)", username, viewerID)
	}()

	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(termW, termH)

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	inputCh := s.loop.InputChan()
	quitCh := make(chan struct{})
	redrawCh := make(chan struct{}, 1)

	go func() {
		var keys keyReader
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, action := range keys.Feed(buf[:n]) {
				if action == scene.ActionQuit {
					close(quitCh)
					return
				}
				select {
				case inputCh <- scene.InputEvent{ViewerID: viewerID, Action: action}:
				default:
				}
			}
		}
	}()

	// A resize must redraw even when the field has not changed.
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
			select {
			case redrawCh <- struct{}{}:
			default:
			}
		}
	}()

	var last scene.Snapshot
	draw := func() {
		termMu.Lock()
		w, h := termW, termH
		termMu.Unlock()

		if output := engine.Render(last.Frame, last.HUD, w, h); len(output) > 0 {
			io.WriteString(sess, output)
		}
	}

	for {
		select {
		case <-quitCh:
			return
		case <-redrawCh:
			draw()
		case snap, ok := <-renderCh:
			if !ok {
				return
			}
			last = snap
			draw()
		}
	}
}

// maxPending bounds a held, unfinished escape sequence.
const maxPending = 16

// keyReader turns raw session bytes into scene actions. A CSI sequence cut
// off at the end of one read is held and completed by the next.
type keyReader struct {
	pending []byte
}

// Feed converts raw bytes into scene actions.
// Handles the control keys, arrow keys (CSI and SS3 forms), Q, and Ctrl-C.
// Other escape sequences are consumed whole and ignored.
func (kr *keyReader) Feed(chunk []byte) []scene.Action {
	data := chunk
	if len(kr.pending) > 0 {
		data = append(kr.pending, chunk...)
		kr.pending = nil
	}

	var actions []scene.Action
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			n, action, complete := parseEscape(data[i:])
			if !complete {
				if rest := data[i:]; len(rest) > 1 && len(rest) < maxPending {
					kr.pending = append([]byte(nil), rest...)
				}
				break
			}
			if action != scene.ActionNone {
				actions = append(actions, action)
			}
			i += n
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case ' ':
			actions = append(actions, scene.ActionRegenerate)
		case 'r', 'R':
			actions = append(actions, scene.ActionResmooth)
		case ']':
			actions = append(actions, scene.ActionOctavesUp)
		case '[':
			actions = append(actions, scene.ActionOctavesDown)
		case '.', '>':
			actions = append(actions, scene.ActionPersistenceUp)
		case ',', '<':
			actions = append(actions, scene.ActionPersistenceDown)
		case '+', '=':
			actions = append(actions, scene.ActionThresholdUp)
		case '-', '_':
			actions = append(actions, scene.ActionThresholdDown)
		case 'i', 'I':
			actions = append(actions, scene.ActionToggleInterpolation)
		case '\t':
			actions = append(actions, scene.ActionToggleDimensions)
		case '1':
			actions = append(actions, scene.ActionDimensions1)
		case '2':
			actions = append(actions, scene.ActionDimensions2)
		case 'c', 'C':
			actions = append(actions, scene.ActionToggleContours)
		case 'q', 'Q':
			actions = append(actions, scene.ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, scene.ActionQuit)
		}
		i += size
	}
	return actions
}

// parseEscape decodes the escape sequence at the start of seq and returns its
// length and action. complete is false when seq ends mid-sequence; a lone
// ESC counts as incomplete and is dropped.
func parseEscape(seq []byte) (n int, action scene.Action, complete bool) {
	if len(seq) < 2 {
		return len(seq), scene.ActionNone, false
	}
	switch seq[1] {
	case 0x1b:
		return 1, scene.ActionNone, true
	case '[':
		// CSI: parameter and intermediate bytes, then a final byte in 0x40-0x7E.
		j := 2
		for j < len(seq) && (seq[j] < 0x40 || seq[j] > 0x7e) {
			j++
		}
		if j == len(seq) {
			return len(seq), scene.ActionNone, false
		}
		if j > 2 {
			return j + 1, scene.ActionNone, true // modified keys like ESC[1;5C
		}
		return j + 1, arrowAction(seq[j]), true
	case 'O':
		if len(seq) < 3 {
			return len(seq), scene.ActionNone, false
		}
		return 3, arrowAction(seq[2]), true
	}
	return 2, scene.ActionNone, true // Alt+key
}

func arrowAction(final byte) scene.Action {
	switch final {
	case 'A':
		return scene.ActionThresholdUp
	case 'B':
		return scene.ActionThresholdDown
	case 'C':
		return scene.ActionOctavesUp
	case 'D':
		return scene.ActionOctavesDown
	}
	return scene.ActionNone
}
