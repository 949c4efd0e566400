package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordEnv names the environment variable consulted before prompting.
const PasswordEnv = "DORMMATCH_PASSWORD"

// Adapter handles secure password input from terminal.
type Adapter struct {
	stdin  io.Reader
	stderr io.Writer
	getenv func(string) string
}

// NewAdapter creates a new terminal adapter.
func NewAdapter(stdin io.Reader, stderr io.Writer) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stderr: stderr,
		getenv: os.Getenv,
	}
}

// ReadPassword returns the password from DORMMATCH_PASSWORD if set. Otherwise
// it prompts with echo disabled on a terminal, or reads one line from
// piped input.
func (a *Adapter) ReadPassword(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	// Useful for CI and scripted logins.
	if envPassword := a.getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if a.IsInteractive() {
		fmt.Fprint(a.stderr, prompt)
		file, _ := a.stdin.(*os.File)
		password, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(a.stderr) // Print newline after password input
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("cannot read password: non-interactive terminal and no input")
	}
	return password, nil
}

// IsInteractive returns true if the terminal is interactive.
func (a *Adapter) IsInteractive() bool {
	if file, ok := a.stdin.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
