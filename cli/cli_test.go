// ABOUTME: Tests for CLI helper functions
// ABOUTME: Covers ID list parsing, query matching, and token masking
package cli

import (
	"testing"
)

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("1, 2,3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", ids)
	}

	if _, err := parseIDList("1,x"); err == nil {
		t.Error("Non-numeric ID should be rejected")
	}
	if _, err := parseIDList(""); err == nil {
		t.Error("Empty list should be rejected")
	}
	if _, err := parseIDList(",,"); err == nil {
		t.Error("List of separators should be rejected")
	}
}

func TestMatchesQuery(t *testing.T) {
	if !matchesQuery("eng", "Engineering", "ENG-1") {
		t.Error("Substring match should be case-insensitive")
	}
	if matchesQuery("sales", "Engineering", "ENG-1") {
		t.Error("Non-matching query should not match")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Short strings pass through, got %q", got)
	}
	if got := truncate("a very long purpose line", 10); len([]rune(got)) != 10 {
		t.Errorf("Expected 10 runes, got %q", got)
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken(""); got != "(not set)" {
		t.Errorf("Empty token: got %q", got)
	}
	if got := maskToken("abcd"); got != "****" {
		t.Errorf("Short token: got %q", got)
	}
	if got := maskToken("token-1234"); got != "******1234" {
		t.Errorf("Long token should keep the last 4, got %q", got)
	}
}
