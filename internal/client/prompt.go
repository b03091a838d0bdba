package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

// PasswordEnv names the environment variable holding the master password
// for non-interactive use.
const PasswordEnv = "FORKEYS_PASSWORD"

// terminalPrompt reads from the terminal without echo. When stdin is not a
// terminal it falls back to reading lines, so secrets can be piped in.
type terminalPrompt struct {
	in    *os.File
	out   io.Writer
	lines *bufio.Reader
}

func newTerminalPrompt(in *os.File, out io.Writer) *terminalPrompt {
	return &terminalPrompt{in: in, out: out, lines: bufio.NewReader(in)}
}

func (p *terminalPrompt) ReadPassword(prompt string) (string, error) {
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return p.ReadLine(prompt)
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(secret), nil
}

func (p *terminalPrompt) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
