package main

import "github.com/mouse-blink/nodecov/cmd"

func main() {
	cmd.Execute()
}
