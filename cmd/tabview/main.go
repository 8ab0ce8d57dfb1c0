// Package main provides the tabview CLI.
package main

import "github.com/mesh-intelligence/tabview/internal/cli"

func main() {
	cli.Execute()
}
