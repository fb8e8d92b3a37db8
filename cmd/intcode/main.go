package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(AppName + ": ")

	app := NewApp(os.Stdout, os.Stderr)
	if err := app.Command().Execute(); err != nil {
		log.Fatal(err)
	}
}
