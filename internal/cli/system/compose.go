package system

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/editor"
)

type ComposeCmd struct {
	Copy bool `short:"c" help:"Copy the composed text to the clipboard instead of printing it."`
}

func (c *ComposeCmd) Run(ctx *cli.Context) error {
	text, err := editor.Edit(ctx.Config.Editor.Command, "", ".md")
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Println("Nothing composed")
		return nil
	}

	if c.Copy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to write clipboard: %w", err)
		}
		fmt.Println(cli.Confirmed("Copied %d characters", len([]rune(text))))
		return nil
	}
	fmt.Println(text)
	return nil
}
