// Package main is the entry point for the linkmend CLI.
package main

import "linkmend.dev/pkg/linkmend/cmd"

func main() {
	cmd.Execute()
}
