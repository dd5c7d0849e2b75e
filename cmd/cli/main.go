package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/festivo/festivo/cmd/cli/internal/commands"
	"github.com/festivo/festivo/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login  commands.LoginCmd  `cmd:"" help:"Log in to the storefront"`
		Logout commands.LogoutCmd `cmd:"" help:"Log out and clear the stored session"`
		Whoami commands.WhoamiCmd `cmd:"" help:"Show the current session"`
		Events commands.EventsCmd `cmd:"" help:"List events"`
		Videos commands.VideosCmd `cmd:"" help:"Search event videos"`
		Share  commands.ShareCmd  `cmd:"" help:"Share an event on a social platform"`

		Debug   bool `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	logger.Setup(cli.Debug)

	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
