package main

import "github.com/aidooit/qualidoo/cmd"

func main() {
	cmd.Execute()
}
