// Package main is the entry point for the guardscope CLI.
package main

import "guardscope.dev/pkg/guardscope/cmd"

func main() {
	cmd.Execute()
}
