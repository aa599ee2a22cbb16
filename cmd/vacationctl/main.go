package main

import "vacation-tracker/internal/cli"

func main() {
	cli.Execute()
}
