package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iasolb/EdgewaterInventoryManager/core/registry"
)

// commandGroups titles the help sections. A command joins the group named by
// the part of its name before the colon, so "db:stats" lists under Database.
var commandGroups = []cobra.Group{
	{ID: "db", Title: "Database:"},
	{ID: "user", Title: "Users:"},
	{ID: "items", Title: "Items:"},
	{ID: "cron", Title: "Scheduling:"},
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register adds an extension command. Call from init(). Panics after Apply or
// when a built-in or earlier registration already uses the name.
func Register(c *cobra.Command) {
	name := c.Name()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd: register after Apply: " + name)
	}
	for _, existing := range append(rootCmd.Commands(), registered()...) {
		if existing.Name() == name {
			panic("cmd: duplicate command " + name)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(registered(), c))
}

func namespace(c *cobra.Command) string {
	ns, _, ok := strings.Cut(c.Name(), ":")
	if !ok {
		return ""
	}
	return ns
}

// Apply attaches the registered commands to the root, sorted by name, and
// files every namespaced command under its help group. Later calls are no-ops.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	list := registered()
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	rootCmd.AddCommand(list...)

	known := make(map[string]bool, len(commandGroups))
	for i := range commandGroups {
		g := commandGroups[i]
		rootCmd.AddGroup(&g)
		known[g.ID] = true
	}
	for _, c := range rootCmd.Commands() {
		if ns := namespace(c); known[ns] {
			c.GroupID = ns
		}
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
