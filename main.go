package main

import "github.com/moyu-x/timovate/cmd"

func main() {
	cmd.Execute()
}
