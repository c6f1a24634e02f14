package main

import "returns-bridge/cmd"

func main() {
	cmd.Execute()
}
