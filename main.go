package main

import "github.com/plume-player/plume/internal/cli"

func main() {
	cli.Execute()
}
