//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	err := tf.StartApp()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should draw the dashboard")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.Quit()

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly with 'q'")
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("Application did not exit after 'q'")
	}
}

func TestQuitKeyIsTypedIntoSymbolField(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("-s", "ibm"))
	require.True(t, tf.Ready(), "Should draw the dashboard")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.SendKeys(KeySymbol)
	require.True(t, tf.SeePlain("IBM"), "Symbol field should open with the current symbol")
	tf.Quit()
	require.True(t, tf.SeePlain("IBMQ"), "'q' should be typed into the field")

	select {
	case <-done:
		t.Fatal("'q' in the symbol field must not quit")
	case <-time.After(300 * time.Millisecond):
	}

	tf.SendCtrlC()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "ctrl-c-failure", 4096)
		t.Fatal("Application did not exit after Ctrl+C")
	}
}
