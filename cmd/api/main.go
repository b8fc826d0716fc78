package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	_ "github.com/Flarenzy/subnetcalc/docs"
	"github.com/Flarenzy/subnetcalc/internal/app"
)

//	@title			Subnet Calculator API
//	@version		1.0
//	@description	IPv4 subnet calculator with per-session history.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:4040
//	@BasePath	/

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := app.LoadConfig()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
