package cli

import (
	"strings"
	"testing"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript(false, false)

	if !strings.Contains(script, hookMarkerStart) {
		t.Error("Script missing start marker")
	}
	if !strings.Contains(script, hookMarkerEnd) {
		t.Error("Script missing end marker")
	}
	if !strings.Contains(script, "comet generate") {
		t.Error("Script missing comet command")
	}
	if !strings.Contains(script, `if [ -z "$2" ]; then`) {
		t.Error("Script must only run when git received no message source")
	}
	if strings.Contains(script, "--no-llm") {
		t.Error("Script should not force --no-llm by default")
	}
	if strings.Contains(script, "comet risk") {
		t.Error("Script should not include the risk gate by default")
	}
}

func TestGenerateHookScript_Options(t *testing.T) {
	script := generateHookScript(true, true)

	if !strings.Contains(script, "comet generate --no-llm") {
		t.Error("Script missing --no-llm")
	}
	if !strings.Contains(script, "comet risk --check") {
		t.Error("Script missing risk gate")
	}
	if !strings.Contains(script, "exit 1") {
		t.Error("Script missing commit block on risk")
	}
}

func TestReplaceCometSection_NoExisting(t *testing.T) {
	existing := "#!/bin/sh\nsome-other-hook\n"
	section := generateHookScript(false, false)

	result := replaceCometSection(existing, section)

	if !strings.HasPrefix(result, "#!/bin/sh\nsome-other-hook\n") {
		t.Error("Existing content should be preserved")
	}
	if !strings.Contains(result, hookMarkerStart) {
		t.Error("New section should be appended")
	}
}

func TestReplaceCometSection_ReplacesInPlace(t *testing.T) {
	old := hookMarkerStart + "\nold body\n" + hookMarkerEnd + "\n"
	existing := "#!/bin/sh\nbefore\n" + old + "after\n"
	section := generateHookScript(true, false)

	result := replaceCometSection(existing, section)

	if strings.Contains(result, "old body") {
		t.Error("Old section body should be replaced")
	}
	if strings.Count(result, hookMarkerStart) != 1 {
		t.Error("Exactly one section should remain")
	}
	if !strings.Contains(result, "before\n") || !strings.Contains(result, "after\n") {
		t.Error("Surrounding content should be preserved")
	}
}

func TestRemoveCometSection(t *testing.T) {
	section := generateHookScript(false, false)
	existing := "#!/bin/sh\nother-hook\n" + section

	result := removeCometSection(existing)

	if strings.Contains(result, hookMarkerStart) {
		t.Error("Section should be removed")
	}
	if !strings.Contains(result, "other-hook") {
		t.Error("Other content should be preserved")
	}
}

func TestRemoveCometSection_NoSection(t *testing.T) {
	existing := "#!/bin/sh\nsomething\n"
	if got := removeCometSection(existing); got != existing {
		t.Errorf("content without a section should pass through untouched, got %q", got)
	}
}
