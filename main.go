package main

import "github.com/evaries/cantilever/cmd"

func main() {
	cmd.Execute()
}
