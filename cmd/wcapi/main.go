package main

import (
	"github.com/Fashionalia/wc-api-go/internal/cli"
)

func main() {
	cli.Execute()
}
