package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/steipete/chromestate"
)

func main() {
	app := cli.App{
		Name:      "chromestate",
		HelpName:  "chromestate",
		Usage:     "extract Chrome cookies for a domain into a Playwright storage state",
		UsageText: "chromestate [options] <domain> [profile]",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "store",
				Usage: "explicit path to the Chrome Cookies database",
			},
			cli.StringFlag{
				Name:  "output, o",
				Usage: "storage-state file to update",
			},
			cli.StringFlag{
				Name:  "config, c",
				Value: "chromestate.ini",
				Usage: "config file with profile/keychain overrides",
			},
		},
		Action:      run,
		HideVersion: true,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		_ = cli.ShowAppHelp(ctx)
		os.Exit(1)
	}
	domain := ctx.Args().Get(0)
	profile := ctx.Args().Get(1)

	cfg, err := chromestate.LoadConfig(ctx.String("config"))
	if err != nil {
		return err
	}

	res, err := chromestate.Extract(context.Background(), chromestate.Options{
		Domain:          domain,
		Profile:         firstNonEmpty(profile, cfg.Profile),
		StorePath:       firstNonEmpty(ctx.String("store"), cfg.StorePath),
		StoragePath:     firstNonEmpty(ctx.String("output"), cfg.StoragePath),
		KeychainService: cfg.KeychainService,
		KeychainAccount: cfg.KeychainAccount,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Extracted %d cookies for %s\n", len(res.Cookies), domain)
	fmt.Printf("✓ Updated %s\n", res.StoragePath)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
