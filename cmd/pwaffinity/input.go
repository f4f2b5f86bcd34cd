package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nao1215/pwaffinity/internal/centers"
	"golang.org/x/term"
)

// stdinName is the list file name that selects standard input.
const stdinName = "-"

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) (*os.File, bool) {
	f, ok := r.(*os.File)
	if !ok {
		return nil, false
	}
	fd := f.Fd()
	return f, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readPasswordList reads passwords from a list file, or stdin for "-".
func readPasswordList(path string, stdin io.Reader) ([]string, error) {
	if path == stdinName {
		return centers.ReadPasswords(stdin)
	}

	f, err := os.Open(path) //nolint:gosec // user-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open password list: %w", err)
	}
	defer f.Close()

	return centers.ReadPasswords(f)
}

// collectPasswords gathers passwords from arguments and the list file. With
// neither, it reads piped standard input or prompts on a terminal.
func collectPasswords(args []string, listFile string, stdin io.Reader, prompt io.Writer) ([]string, error) {
	passwords := append([]string(nil), args...)

	if listFile != "" {
		list, err := readPasswordList(listFile, stdin)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, list...)
	}

	if len(args) > 0 || listFile != "" {
		return passwords, nil
	}

	if f, ok := isTerminal(stdin); ok {
		p, err := promptPassword(f, prompt)
		if err != nil {
			return nil, err
		}
		return []string{p}, nil
	}

	return centers.ReadPasswords(stdin)
}

// errEmptyPrompt is returned when nothing was typed at the prompt.
var errEmptyPrompt = errors.New("no password entered")

// promptPassword reads one password from the terminal without echo.
func promptPassword(tty *os.File, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")
	b, err := term.ReadPassword(int(tty.Fd())) //nolint:gosec // fd fits in int
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(b) == 0 {
		return "", errEmptyPrompt
	}
	return string(b), nil
}
