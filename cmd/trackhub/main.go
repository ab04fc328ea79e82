package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/trackhub-io/trackhub/cmd/trackhub/app"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		os.Exit(1)
	}
}
