package main

import (
	"portable-deployer/internal/cli"
)

func main() {
	cli.Execute()
}
