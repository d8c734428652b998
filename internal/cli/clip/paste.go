package clip

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type PasteCmd struct{}

func (c *PasteCmd) Run(ctx *cli.Context) error {
	text, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	fmt.Println(text)
	return nil
}
