package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/neoportfolio/internal/config"
	"github.com/dmitrijs2005/neoportfolio/internal/server"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	env := config.LoadEnv()

	app, err := server.NewApp(ctx, cfg, env)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
