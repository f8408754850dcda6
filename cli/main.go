package main

import (
	"gastos/cli/cmd"
)

func main() {
	cmd.Execute()
}
