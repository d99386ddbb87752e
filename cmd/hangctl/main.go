package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/letshang/internal/client/cli"
	"github.com/dmitrijs2005/letshang/internal/client/config"
	"github.com/dmitrijs2005/letshang/internal/flagx"
	"github.com/dmitrijs2005/letshang/internal/logging"
)

func main() {

	global, cmd, args := flagx.SplitCommand(os.Args[1:])
	cfg := config.LoadConfig(global)

	app, err := cli.NewApp(cfg, logging.NewJSON(os.Stderr, "warn"), os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(context.Background(), cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
