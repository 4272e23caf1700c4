package main

import (
	"context"
	"os"

	"github.com/blackwell-systems/ghintake/internal/app"
)

// version is set by goreleaser via ldflags.
var version = "dev"

func main() {
	app.SetVersion(version)
	if err := app.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
