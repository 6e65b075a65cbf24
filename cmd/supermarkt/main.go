package main

import (
	"os"

	"github.com/talkincode/supermarkt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
