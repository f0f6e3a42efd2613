package main

import (
	"os"

	"github.com/GoSecureSettings/GoSecureSettings/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
