package main

import "htmlsearch/internal/cli"

func main() {
	cli.Execute()
}
