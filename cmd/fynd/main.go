package main

import (
	"flag"

	"github.com/fyndhq/fynd/internal/app"
	"go.uber.org/fx"
)

func main() {
	dataFlag := flag.String("data", "", "data directory (default ~/.fynd)")
	linkFlag := flag.String("link", "", "open a shared listing link query string, e.g. \"q=shoes&page=2\"")
	consoleFlag := flag.Bool("console", false, "tee logs to stderr (debugging; breaks the TUI)")
	flag.Parse()

	fx.New(
		fx.NopLogger,
		app.Module(app.Params{
			DataDir: *dataFlag,
			Console: *consoleFlag,
			Link:    *linkFlag,
		}),
	).Run()
}
