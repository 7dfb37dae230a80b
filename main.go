package main

import "github.com/cbtrack/cbtrack/cmd"

func main() {
	cmd.Execute()
}
