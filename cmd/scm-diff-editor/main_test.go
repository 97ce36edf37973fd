package main

import "testing"

func TestValidColorMode(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		mode string
		want bool
	}{
		{"auto", true},
		{"always", true},
		{"never", true},
		{"", false},
		{"Always", false},
		{"rainbow", false},
	} {
		if got := validColorMode(tt.mode); got != tt.want {
			t.Errorf("validColorMode(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestExitCodesMatchContract(t *testing.T) {
	t.Parallel()
	if exitOK != 0 {
		t.Errorf("exitOK = %d, want 0", exitOK)
	}
	if exitFail != 1 {
		t.Errorf("exitFail = %d, want 1", exitFail)
	}
	if exitUsage != 2 {
		t.Errorf("exitUsage = %d, want 2", exitUsage)
	}
}
