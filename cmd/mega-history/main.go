package main

import "github.com/ofarias/mega-history/internal/cli"

func main() {
	cli.Execute()
}
