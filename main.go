package main

import "github.com/papapumpkin/steer/cmd"

func main() {
	cmd.Execute()
}
