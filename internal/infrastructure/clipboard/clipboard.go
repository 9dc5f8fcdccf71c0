package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"github.com/atotto/clipboard"

	"NewsDesk/internal/ports"
)

// ErrRichUnsupported is returned when no HTML-capable clipboard tool exists.
var ErrRichUnsupported = errors.New("rich clipboard not supported")

var clipboardWriteAll = clipboard.WriteAll

// richTool is a command line utility that can publish text/html.
type richTool struct {
	name string
	args []string
}

var richTools = []richTool{
	{name: "wl-copy", args: []string{"--type", "text/html"}},
	{name: "xclip", args: []string{"-selection", "clipboard", "-t", "text/html"}},
}

// System writes to the host clipboard.
type System struct {
	lookPath func(string) (string, error)
	run      func(path string, args []string, stdin []byte) error
}

var _ ports.Clipboard = (*System)(nil)

// NewSystem returns a clipboard bound to the host tools.
func NewSystem() *System {
	return &System{lookPath: exec.LookPath, run: runTool}
}

// WriteRich publishes html as text/html. wl-copy and xclip own the selection
// with a single target per invocation, so text is not published alongside it;
// a second call would replace the html. Callers copy text with WriteText when
// the rich copy fails.
func (s *System) WriteRich(html, _ string) error {
	for _, tool := range richTools {
		path, err := s.lookPath(tool.name)
		if err != nil {
			continue
		}
		if err := s.run(path, tool.args, []byte(html)); err != nil {
			return fmt.Errorf("copy html with %s: %w", tool.name, err)
		}
		return nil
	}
	return ErrRichUnsupported
}

// WriteText copies plain text.
func (s *System) WriteText(text string) error {
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("copy text: %w", err)
	}
	return nil
}

func runTool(path string, args []string, stdin []byte) error {
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, bytes.TrimSpace(out))
	}
	return nil
}
