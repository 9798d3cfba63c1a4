package main

import (
	"fmt"
	"os"

	"scandoc_cli/pkg/version"

	"github.com/urfave/cli/v2"
)

const appName = "scandoc"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            appName,
		Usage:           "Ask questions about your scanned documents",
		Version:         version.Summary(),
		HideVersion:     true,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "document assistant base URL (overrides config and SCANDOC_SERVER_URL)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the JSON config file (default ~/.scandoc/config.json)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before reading the environment",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "read queries line by line from stdin instead of the full-screen UI",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "in line mode, print the output element's HTML",
			},
		},
		Action: runInteractive,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Aliases:   []string{"a"},
				Usage:     "Send one query and print the answer",
				ArgsUsage: "QUERY...",
				Action:    runAsk,
			},
			{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "Print version information",
				Action: func(c *cli.Context) error {
					version.WriteDetails(c.App.Writer, appName)
					return nil
				},
			},
		},
	}
}
