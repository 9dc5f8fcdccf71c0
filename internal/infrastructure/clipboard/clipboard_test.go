package clipboard

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteRichUsesFirstAvailableTool(t *testing.T) {
	var gotPath string
	var gotArgs []string
	var gotStdin string
	var calls int

	s := &System{
		lookPath: func(name string) (string, error) {
			if name == "xclip" {
				return "/usr/bin/xclip", nil
			}
			return "", exec.ErrNotFound
		},
		run: func(path string, args []string, stdin []byte) error {
			calls++
			gotPath, gotArgs, gotStdin = path, args, string(stdin)
			return nil
		},
	}

	if err := s.WriteRich("<p>hi</p>", "hi"); err != nil {
		t.Fatalf("WriteRich returned error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("a second invocation would replace the html, got %d calls", calls)
	}
	if gotPath != "/usr/bin/xclip" || gotStdin != "<p>hi</p>" {
		t.Fatalf("unexpected invocation: %s %q", gotPath, gotStdin)
	}
	if diff := cmp.Diff([]string{"-selection", "clipboard", "-t", "text/html"}, gotArgs); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestWriteRichUnsupported(t *testing.T) {
	s := &System{
		lookPath: func(string) (string, error) { return "", exec.ErrNotFound },
		run: func(string, []string, []byte) error {
			t.Fatalf("no tool should run")
			return nil
		},
	}

	if err := s.WriteRich("<p>hi</p>", "hi"); !errors.Is(err, ErrRichUnsupported) {
		t.Fatalf("expected ErrRichUnsupported, got %v", err)
	}
}

func TestWriteRichToolFailure(t *testing.T) {
	boom := errors.New("exit status 1")
	s := &System{
		lookPath: func(name string) (string, error) { return "/bin/" + name, nil },
		run:      func(string, []string, []byte) error { return boom },
	}

	if err := s.WriteRich("<p>hi</p>", "hi"); !errors.Is(err, boom) {
		t.Fatalf("expected tool error, got %v", err)
	}
}

func TestWriteText(t *testing.T) {
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })

	var got string
	clipboardWriteAll = func(text string) error {
		got = text
		return nil
	}

	if err := NewSystem().WriteText("plain"); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}
	if got != "plain" {
		t.Fatalf("unexpected clipboard contents: %q", got)
	}

	clipboardWriteAll = func(string) error { return errors.New("no display") }
	if err := NewSystem().WriteText("plain"); err == nil {
		t.Fatalf("expected error when the clipboard is unavailable")
	}
}
