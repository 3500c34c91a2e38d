// Package main is the entry point for the valstats bot and CLI, which pulls
// Valorant competitive matches and computes player/server performance
// metrics.
package main

import "github.com/valbot/valstats/cmd"

func main() {
	cmd.Execute()
}
