package main

import (
	"context"

	"evcharge/client/internal/cli"
)

func main() {
	cli.Execute(context.Background())
}
