package main

import "github.com/luthersystems/minischeme/cmd"

func main() {
	cmd.Execute()
}
