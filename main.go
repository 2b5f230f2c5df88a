package main

import "github.com/maximthomas/taskboard/cmd"

func main() {
	cmd.Execute()
}
