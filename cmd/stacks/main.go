package main

import "github.com/amterp/stacks/internal/cli"

func main() {
	cli.Run()
}
