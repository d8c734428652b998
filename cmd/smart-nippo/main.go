package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/cli/backups"
	"github.com/mag-rock/smart-nippo/internal/cli/clip"
	"github.com/mag-rock/smart-nippo/internal/cli/reports"
	"github.com/mag-rock/smart-nippo/internal/cli/system"
	"github.com/mag-rock/smart-nippo/internal/cli/templates"
	"github.com/mag-rock/smart-nippo/internal/config"
	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
	"github.com/mag-rock/smart-nippo/internal/logger"
	"github.com/mag-rock/smart-nippo/internal/service"
	"github.com/mag-rock/smart-nippo/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Init system.InitCmd `cmd:"" help:"Initialize storage and seed the standard template."`

	Template struct {
		List       templates.ListCmd       `cmd:"" help:"List templates." default:"1"`
		Show       templates.ShowCmd       `cmd:"" help:"Show a template and its fields."`
		Create     templates.CreateCmd     `cmd:"" help:"Create a template interactively or from a file."`
		Delete     templates.DeleteCmd     `cmd:"" help:"Delete a template."`
		SetDefault templates.SetDefaultCmd `cmd:"" name:"set-default" help:"Mark a template as the default."`
		Export     templates.ExportCmd     `cmd:"" help:"Export a template definition as JSON."`
	} `cmd:"" help:"Manage report templates."`

	Report struct {
		Create reports.CreateCmd `cmd:"" help:"Create a daily report." default:"1"`
		Edit   reports.EditCmd   `cmd:"" help:"Edit an existing report."`
		List   reports.ListCmd   `cmd:"" help:"List reports."`
		Show   reports.ShowCmd   `cmd:"" help:"Show one report."`
		Copy   reports.CopyCmd   `cmd:"" help:"Copy a report to the clipboard."`
		Delete reports.DeleteCmd `cmd:"" help:"Delete a report."`
		Search reports.SearchCmd `cmd:"" help:"Search reports by keyword."`
		Stats  reports.StatsCmd  `cmd:"" help:"Show report statistics."`
	} `cmd:"" help:"Manage daily reports."`

	Backup struct {
		Create backups.CreateCmd `cmd:"" help:"Create a database snapshot." default:"1"`
		List   backups.ListCmd   `cmd:"" help:"List snapshots."`
	} `cmd:"" help:"Manage database snapshots."`

	Clip struct {
		Copy  clip.CopyCmd  `cmd:"" help:"Copy text to the clipboard." default:"1"`
		Paste clip.PasteCmd `cmd:"" help:"Print the clipboard contents."`
	} `cmd:"" help:"Clipboard helpers."`

	Compose system.ComposeCmd `cmd:"" help:"Compose text in the external editor."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("smart-nippo"),
		kong.Description("Template-driven daily report tool"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: config.DefaultDir()}); err != nil {
		apperrors.Fatal(err)
	}

	store := sqlite.NewStore(cfg.DatabasePath())
	appCtx := &cli.Context{
		Store:     store,
		Config:    cfg,
		Templates: service.NewTemplateService(store),
		Reports:   service.NewReportService(store),
	}

	// Commands that touch the database expect an existing file; init creates
	// it, and the clipboard and compose helpers never open it.
	cmdPath := ctx.Command()
	needsStore := cmdPath != "init" &&
		!strings.HasPrefix(cmdPath, "clip") &&
		!strings.HasPrefix(cmdPath, "compose")
	if needsStore {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		apperrors.Fatal(err)
	}
}
