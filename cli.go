//go:build cli
// +build cli

package main

import (
	_ "github.com/iasolb/EdgewaterInventoryManager/custom"

	"github.com/iasolb/EdgewaterInventoryManager/cmd"
	"github.com/iasolb/EdgewaterInventoryManager/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
