package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mwagner84/htmlwash"
)

func run(c *cli.Context) error {
	var z *zap.Logger
	var err error

	if c.Bool("debug") {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	sugar := z.Sugar()
	defer sugar.Sync()

	var input []byte
	if c.Args().Present() {
		input, err = os.ReadFile(c.Args().First())
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	if c.Bool("text") {
		return writeOut(c.String("output"), htmlwash.StripTags(string(input)))
	}

	s := htmlwash.New(htmlwash.NewPolicy(htmlwash.Options{
		AllowedTags:       splitList(c.String("tags")),
		AllowedAttributes: splitList(c.String("attrs")),
		AllowedCSSStyles:  splitList(c.String("styles")),
		AllowedSchemes:    splitList(c.String("schemes")),
	}))
	s.SetLogger(sugar)

	return writeOut(c.String("output"), s.SanitizeMatching(string(input), c.String("selector")))
}

// splitList turns a comma-separated flag value into a whitelist override.
// An unset flag returns nil, which keeps the built-in default; "none"
// returns an empty list, which disables the category.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	if v == "none" {
		return []string{}
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeOut(path, result string) error {
	if path == "" {
		fmt.Println(result)
		return nil
	}
	return os.WriteFile(path, []byte(result+"\n"), 0o664)
}

func main() {
	app := &cli.App{
		Name:      "htmlwash",
		Version:   "v0.1.0",
		Usage:     "sanitize untrusted HTML against a whitelist policy",
		UsageText: "htmlwash [options] [INPUT_FILE] (reads stdin when no file is given)",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write result to `FILE` instead of stdout",
			},
			&cli.StringFlag{
				Name:  "tags",
				Usage: "comma-separated tag whitelist replacing the default (\"none\" disables)",
			},
			&cli.StringFlag{
				Name:  "attrs",
				Usage: "comma-separated attribute whitelist replacing the default (\"none\" disables)",
			},
			&cli.StringFlag{
				Name:  "styles",
				Usage: "comma-separated CSS property whitelist replacing the default (\"none\" disables)",
			},
			&cli.StringFlag{
				Name:  "schemes",
				Usage: "comma-separated URI scheme prefixes replacing the default (\"none\" disables)",
			},
			&cli.StringFlag{
				Name:    "selector",
				Aliases: []string{"s"},
				Usage:   "extra CSS selector allow-listed at the top level",
			},
			&cli.BoolFlag{
				Name:    "text",
				Aliases: []string{"t"},
				Usage:   "strip all markup and output plain text",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "log sanitizer diagnostics",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "htmlwash:", err)
		os.Exit(1)
	}
}
