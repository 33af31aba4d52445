package launcher

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/shlex"
)

// LaunchError reports a file that could not be handed to an application
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Launcher opens files in the OS default application or a configured command
type Launcher struct {
	goos    string
	command []string
	start   func(cmd *exec.Cmd) error
}

// New creates a launcher. openCommand, when set, is split like a shell
// command line and run with the file path appended.
func New(openCommand string) (*Launcher, error) {
	l := &Launcher{goos: runtime.GOOS, start: startDetached}
	if openCommand != "" {
		args, err := shlex.Split(openCommand)
		if err != nil {
			return nil, fmt.Errorf("invalid open command %q: %w", openCommand, err)
		}
		l.command = args
	}
	return l, nil
}

// Open starts the application for path without waiting for it to exit
func (l *Launcher) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &LaunchError{Path: path, Err: err}
	}

	name, args := Command(l.goos, l.command, path)
	log.Printf("Opening %s with %s %v", path, name, args)
	if err := l.start(exec.Command(name, args...)); err != nil {
		return &LaunchError{Path: path, Err: err}
	}
	return nil
}

// Command returns the program and arguments that open path on goos
func Command(goos string, custom []string, path string) (string, []string) {
	if len(custom) > 0 {
		return custom[0], append(append([]string{}, custom[1:]...), path)
	}
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the process once the application exits
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("Open command %s exited: %v", cmd.Path, err)
		}
	}()
	return nil
}
