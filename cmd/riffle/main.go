package main

import "github.com/tessro/riffle/internal/cli"

func main() {
	cli.Execute()
}
