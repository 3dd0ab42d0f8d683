package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanelString(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	got := PanelString([]string{"ab", C(fgRed, "abcd")})
	assert.Equal(t, "+------+\n| ab   |\n| abcd |\n+------+", got)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░ 1/2 paid", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░ 0/0 paid", ProgressBar(0, 0, 1))
}

func TestBoxFollowsTheme(t *testing.T) {
	SetTheme("mono")
	assert.Equal(t, "[x]", Box(true))
	SetTheme("classic")
	assert.Equal(t, "☐", Box(false))
}

func TestOKAndFail(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)

	OK("logged out")
	Fail("nope")
	assert.Equal(t, "✔ logged out\n", out.String())
	assert.Equal(t, "✖ nope\n", errOut.String())
}
