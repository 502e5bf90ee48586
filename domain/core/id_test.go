package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseSessionID tests that only UUIDs are accepted as session IDs
func TestParseSessionID(t *testing.T) {
	fresh := NewSessionID()
	parsed, err := ParseSessionID(fresh.String())
	if err != nil {
		t.Fatalf("Unexpected error parsing fresh session ID: %v", err)
	}
	if parsed != fresh {
		t.Errorf("Expected %s, got %s", fresh, parsed)
	}

	for _, input := range []string{"", "   ", "not-a-uuid", "12345"} {
		if _, err := ParseSessionID(input); err == nil {
			t.Errorf("Expected error for input '%s', but got none", input)
		}
	}
}

// TestParseRecordID tests record ID parsing
func TestParseRecordID(t *testing.T) {
	tests := []struct {
		input    string
		expected RecordID
		hasError bool
	}{
		{"0", 0, false},
		{" 42 ", 42, false},
		{"", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}

	for _, test := range tests {
		result, err := ParseRecordID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestRecordIDString tests record ID string conversion
func TestRecordIDString(t *testing.T) {
	if RecordID(7).String() != "7" {
		t.Errorf("Expected String() to return '7', got '%s'", RecordID(7).String())
	}
}
