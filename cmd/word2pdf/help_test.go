package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Command help pages
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no args", nil, []string{"Usage: word2pdf <command>", "convert", "watch", "doctor"}},
		{"convert", []string{"convert"}, []string{"--output", "--engine", "--soffice"}},
		{"batch", []string{"batch"}, []string{"--recursive", "--output"}},
		{"run", []string{"run"}, []string{"config"}},
		{"watch", []string{"watch"}, []string{"--existing", "--debounce"}},
		{"find", []string{"find"}, []string{"--hours", "--match"}},
		{"doctor", []string{"doctor"}, []string{"--json"}},
		{"version", []string{"version"}, []string{"word2pdf version"}},
		{"help", []string{"help"}, []string{"help [command]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			runHelp(tt.args, env)

			if stderr.Len() != 0 {
				t.Errorf("stderr = %q, want empty", stderr.String())
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("help %v should contain %q, got:\n%s", tt.args, want, stdout.String())
				}
			}
		})
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := newTestEnv(nil)
	runHelp([]string{"publish"}, env)

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Unknown command: publish") {
		t.Errorf("stderr = %q, want unknown command", stderr.String())
	}
}
