package main

import "github.com/seojinpark/safemap-cli/cmd"

func main() {
	cmd.Execute()
}
