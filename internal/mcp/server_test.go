package mcp

import (
	"strings"
	"testing"

	"github.com/kestrelwm/modeshift/internal/ipc"
)

func TestValidateModeInput(t *testing.T) {
	if err := validateModeInput(&SetWindowModeInput{Mode: ipc.ModeWindowed}); err != nil {
		t.Fatalf("windowed: %v", err)
	}
	if err := validateModeInput(&SetWindowModeInput{Mode: ipc.ModeBorderless}); err != nil {
		t.Fatalf("borderless: %v", err)
	}

	err := validateModeInput(&SetWindowModeInput{Mode: ipc.ModeExclusive})
	if err == nil {
		t.Fatal("exclusive without monitor/mode must fail")
	}
	if !strings.Contains(err.Error(), "list_video_modes") {
		t.Fatalf("error %q lacks guidance", err)
	}

	monitor := 1
	native := uint32(9)
	if err := validateModeInput(&SetWindowModeInput{Mode: ipc.ModeExclusive, Monitor: &monitor, VideoMode: &native}); err != nil {
		t.Fatalf("exclusive: %v", err)
	}

	if err := validateModeInput(&SetWindowModeInput{Mode: "giant"}); err == nil {
		t.Fatal("unknown mode must fail")
	}
}
