package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

func TestRegisterAndApply_GroupsByNamespace(t *testing.T) {
	out := &bytes.Buffer{}
	Register(&cobra.Command{
		Use: "items:count",
		Run: func(c *cobra.Command, args []string) {
			out.WriteString("42")
		},
	})
	Register(&cobra.Command{Use: "reindex"})

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("registering db:migrate again: want panic")
			}
		}()
		Register(&cobra.Command{Use: "db:migrate"})
	}()

	Apply()
	Apply()

	groups := map[string]string{}
	for _, c := range rootCmd.Commands() {
		groups[c.Name()] = c.GroupID
	}
	for name, want := range map[string]string{
		"db:migrate":  "db",
		"user:add":    "user",
		"cron:start":  "cron",
		"items:count": "items",
		"reindex":     "",
	} {
		got, ok := groups[name]
		if !ok {
			t.Errorf("%s not attached to root", name)
			continue
		}
		if got != want {
			t.Errorf("%s group = %q, want %q", name, got, want)
		}
	}

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"items:count"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "42" {
		t.Errorf("output = %q, want 42", out.String())
	}
}

func TestPrintStats(t *testing.T) {
	color.NoColor = true
	out := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetOut(out)
	printStats(c, []farm.TableStat{
		{Tag: "unit", Table: "T_Units", Rows: 3},
		{Tag: "item", Table: "T_Items", Rows: 4},
		{Tag: "order", Table: "T_Orders", Err: "no such table"},
	})
	got := out.String()
	for _, want := range []string{"T_Items", "T_Units", "no such table", "total"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "T_Items") > strings.Index(got, "T_Units") {
		t.Errorf("tables not sorted:\n%s", got)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if last := lines[len(lines)-1]; !strings.HasSuffix(last, "7") {
		t.Errorf("total line = %q, want 7", last)
	}
}
