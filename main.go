// Package main is the entry point for the covtree CLI.
package main

import "covtree.dev/pkg/covtree/cmd"

func main() {
	cmd.Execute()
}
