package main

import "github.com/riftgraph/asrov/cmd"

func main() {
	cmd.Execute()
}
