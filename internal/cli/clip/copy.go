package clip

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type CopyCmd struct {
	Text     string `arg:"" optional:"" help:"Text to copy (read from stdin when omitted)."`
	Prefix   string `help:"Text prepended before the content."`
	Suffix   string `help:"Text appended after the content."`
	Template string `help:"Wrapper template; {text} marks where the content goes."`
}

func (c *CopyCmd) Run(ctx *cli.Context) error {
	text := c.Text
	if text == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimRight(string(raw), "\n")
	}

	if c.Template != "" {
		text = strings.ReplaceAll(c.Template, "{text}", text)
	}
	text = c.Prefix + text + c.Suffix

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	fmt.Println(cli.Confirmed("Copied %d characters", len([]rune(text))))
	return nil
}
