package main

import "github.com/sadopc/apptime/internal/cli"

func main() {
	cli.Execute()
}
