package main

import (
	"go.uber.org/fx"

	"github.com/bitbites/canteen/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
