package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"noise-contours/internal/scene"
)

func parseInput(data []byte) []scene.Action {
	var kr keyReader
	return kr.Feed(data)
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []scene.Action
	}{
		{"empty", "", nil},
		{"regenerate", " ", []scene.Action{scene.ActionRegenerate}},
		{"resmooth", "rR", []scene.Action{scene.ActionResmooth, scene.ActionResmooth}},
		{"octaves", "[]", []scene.Action{scene.ActionOctavesDown, scene.ActionOctavesUp}},
		{"persistence", ",.", []scene.Action{scene.ActionPersistenceDown, scene.ActionPersistenceUp}},
		{"threshold keys", "+-=", []scene.Action{scene.ActionThresholdUp, scene.ActionThresholdDown, scene.ActionThresholdUp}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []scene.Action{
			scene.ActionThresholdUp, scene.ActionThresholdDown, scene.ActionOctavesUp, scene.ActionOctavesDown,
		}},
		{"toggles", "ic\t", []scene.Action{scene.ActionToggleInterpolation, scene.ActionToggleContours, scene.ActionToggleDimensions}},
		{"dimensions", "12", []scene.Action{scene.ActionDimensions1, scene.ActionDimensions2}},
		{"quit", "q", []scene.Action{scene.ActionQuit}},
		{"ctrl-c", "\x03", []scene.Action{scene.ActionQuit}},
		{"ignored", "xyz\x1b[Z", nil},
		{"ss3 arrows", "\x1bOA\x1bOD", []scene.Action{scene.ActionThresholdUp, scene.ActionOctavesDown}},
		{"ctrl-right ignored", "\x1b[1;5C", nil},
		{"long csi then key", "\x1b[200~c", []scene.Action{scene.ActionToggleContours}},
		{"alt key ignored", "\x1bc]", []scene.Action{scene.ActionOctavesUp}},
		{"double esc", "\x1b\x1b[A", []scene.Action{scene.ActionThresholdUp}},
		{"trailing esc dropped", "c\x1b", []scene.Action{scene.ActionToggleContours}},
		{"trailing csi dropped", "\x1b[", nil},
		{"unfinished params dropped", "\x1b[1;5", nil},
		{"multibyte ignored", "é ", []scene.Action{scene.ActionRegenerate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInput([]byte(tt.in)))
		})
	}
}

func TestKeyReaderJoinsSplitSequences(t *testing.T) {
	var kr keyReader
	assert.Empty(t, kr.Feed([]byte("\x1b[")))
	assert.Equal(t, []scene.Action{scene.ActionOctavesUp}, kr.Feed([]byte("C")))

	assert.Empty(t, kr.Feed([]byte("\x1b[1;")))
	assert.Empty(t, kr.Feed([]byte("5C")), "modified arrow stays ignored")

	assert.Empty(t, kr.Feed([]byte("\x1b")), "lone ESC is not held")
	assert.Equal(t, []scene.Action{scene.ActionToggleContours}, kr.Feed([]byte("c")))

	assert.Empty(t, kr.Feed([]byte("\x1bO")))
	assert.Equal(t, []scene.Action{scene.ActionThresholdDown, scene.ActionRegenerate}, kr.Feed([]byte("B ")))
}
