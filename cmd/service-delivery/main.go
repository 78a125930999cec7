package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.MustBuildDeliveryContainer(ctx)
	app.NewRunner("service-delivery").MustRun(container)
}
