package main

import "github.com/selffix-ai/repairguide/cmd"

func main() {
	cmd.Execute()
}
