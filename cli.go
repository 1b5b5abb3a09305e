//go:build cli
// +build cli

package main

import (
	"productimport.GO/cmd"
	"productimport.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
