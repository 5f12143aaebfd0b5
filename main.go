package main

import (
	"log"

	"github.com/starcoach/starcoach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
