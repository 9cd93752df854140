package main

import "arknotes/cmd/arknotes-cli/cmd"

func main() {
	cmd.Execute()
}
