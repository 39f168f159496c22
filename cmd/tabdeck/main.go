package main

import "github.com/tabdeck/tabdeck/internal/cli/cmd"

func main() {
	cmd.Execute()
}
