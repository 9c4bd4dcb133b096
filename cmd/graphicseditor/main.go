package main

import "github.com/breftejk/GraphicsEditor/pkg/cli"

func main() {
	cli.RunCLI()
}
