package main

import (
	"context"
	"log"
	"os"

	"github.com/fieldworks/sitereport/internal/buildinfo"
	"github.com/fieldworks/sitereport/internal/client/cli"
	"github.com/fieldworks/sitereport/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
