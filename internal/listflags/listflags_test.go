package listflags

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestAddAllFlag(t *testing.T) {
	var all bool
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, &all)

	if err := cmd.ParseFlags([]string{"--all"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !all {
		t.Fatalf("expected --all to set target")
	}
}

func TestAddAllFlagWithoutTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, nil)

	if cmd.Flags().Lookup("all") == nil {
		t.Fatalf("expected all flag registered")
	}
}

func TestAddTabFlag(t *testing.T) {
	var tab string
	cmd := &cobra.Command{Use: "list"}
	AddTabFlag(cmd, &tab)

	if err := cmd.ParseFlags([]string{"-t", "deleted"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if tab != "deleted" {
		t.Fatalf("expected tab deleted, got %q", tab)
	}
	usage := cmd.Flags().Lookup("tab").Usage
	if !strings.Contains(usage, "Active, Completed, Deleted") {
		t.Fatalf("expected valid tabs in usage, got %q", usage)
	}
}

func TestAddJSONFlag(t *testing.T) {
	var asJSON bool
	cmd := &cobra.Command{Use: "list"}
	AddJSONFlag(cmd, &asJSON)

	if err := cmd.ParseFlags([]string{"--json"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !asJSON {
		t.Fatalf("expected --json to set target")
	}
}
