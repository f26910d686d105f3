package app

import "testing"

func TestAllCommands(t *testing.T) {
	root := AllCommands()
	if root.Runnable() {
		t.Error("root command should dispatch to subcommands, not run")
	}
	want := []string{"oracle", "parse", "sample", "generate", "rescore"}
	if len(root.Subcommands) != len(want) {
		t.Fatalf("root has %d subcommands, want %d", len(root.Subcommands), len(want))
	}
	for i, sub := range root.Subcommands {
		if got := sub.Name(); got != want[i] {
			t.Errorf("subcommand %d is %q, want %q", i, got, want[i])
		}
		if !sub.Runnable() {
			t.Errorf("subcommand %q has no Run function", want[i])
		}
		if sub.Flag.Lookup(NUM_CPUS_FLAG) == nil {
			t.Errorf("subcommand %q misses the %s flag", want[i], NUM_CPUS_FLAG)
		}
	}
}
