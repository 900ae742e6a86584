//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.True(t, strings.Contains(output, "Usage"), "Help should contain usage")
	require.True(t, strings.Contains(output, "--time-frame"), "Help should list the time frame flag")
	require.True(t, strings.Contains(output, "--demo"), "Help should list the demo flag")
}

func TestBadTimeFrameFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command(binPath, "--demo", "-t", "7d")
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	out, err := cmd.CombinedOutput()
	require.Error(t, err, "An unknown time frame should fail")
	require.Contains(t, string(out), "invalid time frame")
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should draw the dashboard")

	tf.ClearOutput()
	tf.SendKeys(KeyHelp)
	require.True(t, tf.OutputContainsPlain("stockdash help", 3*time.Second), "Help pager should open")

	// ov quits on q as well
	tf.ClearOutput()
	tf.Quit()
	require.True(t, tf.Ready(), "Should return to the dashboard after closing the pager")
}
