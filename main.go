package main

import "github.com/unpackrr/unpackrr/cmd"

func main() {
	cmd.Execute()
}
