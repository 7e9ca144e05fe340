package main

import "github.com/phishguard/phishctl/cmd"

func main() {
	cmd.Execute()
}
