package main

import (
	"github.com/brachisto/brachisto-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
