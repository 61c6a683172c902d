package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/neoportfolio/internal/cli"
	"github.com/dmitrijs2005/neoportfolio/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	env := config.LoadEnv()

	app, err := cli.NewApp(ctx, cfg, env)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
