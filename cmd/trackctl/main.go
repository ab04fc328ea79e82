package main

import (
	"fmt"
	"os"

	"github.com/trackhub-io/trackhub/cmd/trackctl/app"
)

func main() {
	if err := app.NewTrackctlCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
