package backups

import (
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/backup"
	"github.com/mag-rock/smart-nippo/internal/cli"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	rows := make([][]string, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, []string{
			b.Path,
			b.Timestamp.Local().Format("2006-01-02 15:04:05"),
			formatSize(b.Size),
		})
	}
	fmt.Println(cli.RenderTable([]string{"PATH", "CREATED", "SIZE"}, rows))
	return nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
