// main package for unic command-line tool
// Package main is the entry point for the unic CLI.
package main

import "unic.dev/pkg/unic/cmd"

func main() {
	cmd.Execute()
}
