package main

import "github.com/jjenkins/vinlookup/cmd"

func main() {
	cmd.Execute()
}
