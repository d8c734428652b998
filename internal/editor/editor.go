package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Edit launches an external editor on a temp file seeded with initial text
// and returns the edited content with surrounding whitespace trimmed. The
// command falls back to $EDITOR, then vim, when empty.
func Edit(command, initial, extension string) (string, error) {
	if command == "" {
		command = os.Getenv("EDITOR")
	}
	if command == "" {
		command = "vim"
	}
	if extension == "" {
		extension = ".txt"
	}

	tmp, err := os.CreateTemp("", "smart-nippo-*"+extension)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	// The configured command may carry flags, e.g. "code --wait".
	parts := strings.Fields(command)
	args := append(parts[1:], path)

	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", command, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return strings.TrimSpace(string(edited)), nil
}
