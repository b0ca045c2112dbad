package main

import (
	"context"

	"backend/internal/pkg"

	"github.com/sirupsen/logrus"
)

// @title Portal de Compras API
// @version 1.0
// @description API del ciclo de vida de solicitudes de orden de compra y desembolsos

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	logrus.Info("App start")

	app, err := pkg.NewApp(context.Background())
	if err != nil {
		logrus.Fatal(err)
	}

	app.RunApp()
	logrus.Info("App terminated")
}
