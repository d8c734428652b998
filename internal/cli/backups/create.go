package backups

import (
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/backup"
	"github.com/mag-rock/smart-nippo/internal/cli"
)

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Println(cli.Confirmed("Backup written to %s", path))
	return nil
}
