// Command hoaxify serves the Hoaxify client pages on a local address and
// talks to the Hoaxify REST backend on behalf of its single user.
package main

import (
	"log"

	"github.com/patric-chuzhbe/hoaxify/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		log.Fatal(err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		log.Println(err)
	}
}
