package main

import "github.com/headwayhq/headway/cmd"

func main() {
	cmd.Execute()
}
