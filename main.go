package main

import "github.com/lepinkainen/otaku/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
