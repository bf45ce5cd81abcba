package main

import "github.com/ugaemi/groupcode/internal/cli"

func main() {
	cli.Run()
}
