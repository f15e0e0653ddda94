package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(".", w)
	}
	return strings.Join(lines, "\n")
}

func TestPlaceOverlay_AtPosition(t *testing.T) {
	out := ansi.Strip(PlaceOverlay(2, 1, "ab\ncd", grid(6, 4), false))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "......", lines[0])
	assert.Equal(t, "..ab..", lines[1])
	assert.Equal(t, "..cd..", lines[2])
	assert.Equal(t, "......", lines[3])
}

func TestPlaceOverlay_Center(t *testing.T) {
	out := ansi.Strip(PlaceOverlay(0, 0, "xx", grid(6, 3), true))
	assert.Equal(t, "......\n..xx..\n......", out)
}

func TestPlaceOverlay_ClipsAtEdges(t *testing.T) {
	out := ansi.Strip(PlaceOverlay(4, 2, "wxyz\nqq", grid(6, 3), false))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3, "rows below bg are dropped")
	assert.Equal(t, "....wx", lines[2])
}

func TestPlaceOverlay_PadsShortBackground(t *testing.T) {
	out := ansi.Strip(PlaceOverlay(3, 0, "z", "ab\n......", false))
	assert.Equal(t, "ab z", strings.Split(out, "\n")[0])
}

// marker mimics a bubblezone marker: a CSI sequence with final byte z.
func marker(n int) string {
	return "\x1b[" + strings.Repeat("1", n) + "z"
}

func TestPlaceOverlay_MarkersRightOfOverlayStayPut(t *testing.T) {
	start, end := marker(3), marker(4)
	bg := "......" + start + "pppp" + end

	out := PlaceOverlay(2, 0, "XXXX", bg, false)

	assert.Equal(t, "..XXXXpppp", ansi.Strip(out))
	assert.Equal(t, 1, strings.Count(out, start))
	assert.Equal(t, 1, strings.Count(out, end))
	fg := strings.Index(out, "XXXX")
	assert.Greater(t, strings.Index(out, start), fg, "start marker must not move left of the overlay")
	assert.Less(t, strings.Index(out, start), strings.Index(out, "pppp"))
}

func TestPlaceOverlay_CoveredMarkersFollowOverlay(t *testing.T) {
	covered, after := marker(3), marker(4)
	bg := "ab" + covered + "cd" + after + "ef"

	out := PlaceOverlay(2, 0, "XY", bg, false)

	assert.Equal(t, "abXYef", ansi.Strip(out))
	assert.Equal(t, 1, strings.Count(out, covered))
	assert.Equal(t, 1, strings.Count(out, after))
	assert.Less(t, strings.Index(out, "XY"), strings.Index(out, covered))
	assert.Less(t, strings.Index(out, covered), strings.Index(out, after))
	assert.Less(t, strings.Index(out, after), strings.Index(out, "ef"))
}

func TestPlaceOverlay_KeepsBackgroundStyleAfterOverlay(t *testing.T) {
	bg := "\x1b[31mabcdef\x1b[0m"

	out := PlaceOverlay(2, 0, "XY", bg, false)

	assert.Equal(t, "abXYef", ansi.Strip(out))
	assert.Contains(t, out, "\x1b[31mef")
	assert.True(t, strings.HasPrefix(out, "\x1b[31mab"))
}

func TestPlaceOverlay_WideCellUnderEdgeBecomesBlank(t *testing.T) {
	bg := "a漢字b"

	out := ansi.Strip(PlaceOverlay(2, 0, "X", bg, false))

	assert.Equal(t, "a X字b", out)
}
