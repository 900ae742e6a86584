//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const maxOutput = 1 << 20 // bytes of scrollback kept

var binPath = "stockdash_e2e"

// Keys as the terminal sends them
const (
	KeyEnter     = "\r"
	KeyEsc       = "\x1b"
	KeyCtrlC     = "\x03"
	KeyBackspace = "\x7f"
	KeyDown      = "j"
	KeyQuit      = "q"
	KeySymbol    = "s"
	KeyTimeFrame = "t"
	KeyIndicator = "i"
	KeyHelp      = "?"
)

// CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// TUITestFramework drives one stockdash process in a PTY and records
// everything it draws
type TUITestFramework struct {
	t   *testing.T
	pty *os.File
	cmd *exec.Cmd

	mu  sync.Mutex
	out []byte
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t}
}

// StartApp launches stockdash with generated prices and the given
// arguments in a 100x30 PTY. HOME and the XDG dirs point at a temp dir.
func (tf *TUITestFramework) StartApp(args ...string) error {
	home := tf.t.TempDir()
	tf.cmd = exec.Command(binPath, append([]string{"--demo"}, args...)...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"XDG_CACHE_HOME="+filepath.Join(home, ".cache"),
		"POLYGON_API_KEY=",
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 30, Cols: 100})
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", binPath, err)
	}
	tf.pty = f
	go tf.capture(f)
	return nil
}

func (tf *TUITestFramework) capture(f *os.File) {
	buf := make([]byte, 8192)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			tf.mu.Lock()
			tf.out = append(tf.out, buf[:n]...)
			if over := len(tf.out) - maxOutput; over > 0 {
				tf.out = tf.out[over:]
			}
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }
func (tf *TUITestFramework) Enter() error    { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) Down() error     { return tf.SendKeys(KeyDown) }
func (tf *TUITestFramework) Quit() error     { return tf.SendKeys(KeyQuit) }

// Click sends an SGR left click (press and release) at the zero-based cell x, y
func (tf *TUITestFramework) Click(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<0;%d;%dM\x1b[<0;%d;%dm", x+1, y+1, x+1, y+1))
}

// ClearOutput drops everything captured so far, so later waits only see
// new output
func (tf *TUITestFramework) ClearOutput() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.out = tf.out[:0]
}

// Ready waits for the dashboard footer to be drawn
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContainsPlain("Time frame:", 5*time.Second)
}

// SeePlain waits up to three seconds for text in the plain output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// OutputContainsPlain polls the output with escape sequences removed
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if strings.Contains(tf.plain(), text) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func (tf *TUITestFramework) plain() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return ansiRe.ReplaceAllString(string(tf.out), "")
}

// DumpTailOnFail writes the last n bytes of plain output to a file in the
// test's temp dir and logs its path
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	s := tf.plain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the PTY, which hangs up the child, then kills and reaps it
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
