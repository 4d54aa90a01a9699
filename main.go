package main

import "github.com/timvw/panefm/cmd"

func main() {
	cmd.Execute()
}
