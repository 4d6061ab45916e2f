package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

type CLI struct {
	Verbose  bool        `short:"v" env:"BGRULES_VERBOSE" help:"Log every event"`
	SelfPlay SelfPlayCmd `cmd:"selfplay" help:"Play games between random advisors and audit every position"`
	Match    MatchCmd    `cmd:"" help:"Host one automated match on the match server"`
	Dice     DiceCmd     `cmd:"" help:"Print dice roll statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bgrules"),
		kong.Description("Backgammon rules engine tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
