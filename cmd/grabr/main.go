package main

import "github.com/handiism/grabr/internal/cli"

func main() {
	cli.Execute(cli.Images())
}
