package main

import (
	"github.com/onflow/flight-surety/cmd/surety/cmd"
)

func main() {
	cmd.Execute()
}
