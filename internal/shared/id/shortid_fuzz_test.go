package id

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzParsePrefixedID tests the ParsePrefixedID function with random inputs
func FuzzParsePrefixedID(f *testing.F) {
	seeds := []string{
		"lead_xK9mP2vL3nQ",
		"asgn_abc123",
		"",
		"nounderscore",
		"_leadingunderscore",
		"trailing_",
		"multiple_under_scores_here",
		"__double__underscore__",
		"a_b",
		"*_special",
		"中文_测试",
		strings.Repeat("a", 1000) + "_" + strings.Repeat("b", 1000),
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}

		prefix, shortID, err := ParsePrefixedID(input)

		if !strings.Contains(input, "_") {
			if err == nil {
				t.Errorf("ParsePrefixedID(%q) should return error for input without underscore", input)
			}
			return
		}

		if err == nil {
			if !strings.HasPrefix(input, prefix+"_") {
				t.Errorf("ParsePrefixedID(%q) returned prefix=%q which doesn't match input", input, prefix)
			}
			parts := strings.SplitN(input, "_", 2)
			if len(parts) == 2 && shortID != parts[1] {
				t.Errorf("ParsePrefixedID(%q) returned shortID=%q, expected %q", input, shortID, parts[1])
			}
		}
	})
}

// FuzzValidatePrefix tests the ValidatePrefix function
func FuzzValidatePrefix(f *testing.F) {
	seeds := []struct {
		prefixedID     string
		expectedPrefix string
	}{
		{"lead_test", "lead"},
		{"lead_test", "asgn"},
		{"asgn_abc", "asgn"},
		{"asgn_abc", "lead"},
		{"", "lead"},
		{"nounderscore", "lead"},
		{"lead_", "lead"},
		{"_test", ""},
	}

	for _, seed := range seeds {
		f.Add(seed.prefixedID, seed.expectedPrefix)
	}

	f.Fuzz(func(t *testing.T, prefixedID, expectedPrefix string) {
		if !utf8.ValidString(prefixedID) || !utf8.ValidString(expectedPrefix) {
			return
		}

		err := ValidatePrefix(prefixedID, expectedPrefix)

		if !strings.Contains(prefixedID, "_") {
			if err == nil {
				t.Errorf("ValidatePrefix(%q, %q) should return error for ID without underscore", prefixedID, expectedPrefix)
			}
			return
		}

		if strings.HasPrefix(prefixedID, expectedPrefix+"_") && err != nil {
			t.Errorf("ValidatePrefix(%q, %q) returned unexpected error: %v", prefixedID, expectedPrefix, err)
		}

		if !strings.HasPrefix(prefixedID, expectedPrefix+"_") && err == nil {
			actualPrefix := strings.SplitN(prefixedID, "_", 2)[0]
			if actualPrefix != expectedPrefix {
				t.Errorf("ValidatePrefix(%q, %q) should return error for wrong prefix", prefixedID, expectedPrefix)
			}
		}
	})
}

// FuzzFormatWithPrefix tests the FormatWithPrefix function
func FuzzFormatWithPrefix(f *testing.F) {
	seeds := []struct {
		prefix  string
		shortID string
	}{
		{"lead", "abc123"},
		{"", "abc123"},
		{"lead", ""},
		{"", ""},
		{"asgn", "test_with_underscore"},
		{"*special*", "id"},
		{"中文", "测试"},
	}

	for _, seed := range seeds {
		f.Add(seed.prefix, seed.shortID)
	}

	f.Fuzz(func(t *testing.T, prefix, shortID string) {
		if !utf8.ValidString(prefix) || !utf8.ValidString(shortID) {
			return
		}

		result := FormatWithPrefix(prefix, shortID)

		if shortID == "" {
			if result != "" {
				t.Errorf("FormatWithPrefix(%q, %q) = %q, expected empty string", prefix, shortID, result)
			}
			return
		}

		expected := prefix + "_" + shortID
		if result != expected {
			t.Errorf("FormatWithPrefix(%q, %q) = %q, expected %q", prefix, shortID, result, expected)
		}
	})
}

// FuzzGenerate tests the Generate function
func FuzzGenerate(f *testing.F) {
	lengths := []int{0, 1, 2, 5, 10, 12, 20, 50, 100}
	for _, l := range lengths {
		f.Add(l)
	}

	f.Fuzz(func(t *testing.T, length int) {
		result, err := Generate(length)

		if err != nil {
			t.Errorf("Generate(%d) returned error: %v", length, err)
			return
		}

		expectedLen := length
		if expectedLen <= 0 {
			expectedLen = DefaultLength
		}

		if len(result) != expectedLen {
			t.Errorf("Generate(%d) returned string of length %d, expected %d", length, len(result), expectedLen)
		}

		for _, c := range result {
			if !strings.ContainsRune(alphabet, c) {
				t.Errorf("Generate(%d) returned invalid character %q", length, c)
			}
		}
	})
}

// TestGenerateUniqueness tests that generated IDs are unique
func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	iterations := 10000

	for i := 0; i < iterations; i++ {
		id, err := Generate(DefaultLength)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		if seen[id] {
			t.Errorf("Generate produced duplicate ID: %s", id)
		}
		seen[id] = true
	}
}

// TestNewPrefixedIDFormats tests that the lead/assignment ID generators
// produce correctly prefixed, round-trippable IDs.
func TestNewPrefixedIDFormats(t *testing.T) {
	tests := []struct {
		name      string
		generator func() (string, error)
		prefix    string
	}{
		{"Lead", NewLeadID, PrefixLead},
		{"Assignment", NewAssignmentID, PrefixAssignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generated, err := tt.generator()
			if err != nil {
				t.Fatalf("generator failed: %v", err)
			}

			if !strings.HasPrefix(generated, tt.prefix+"_") {
				t.Errorf("generated ID %q doesn't have expected prefix %q_", generated, tt.prefix)
			}

			parsedPrefix, shortID, err := ParsePrefixedID(generated)
			if err != nil {
				t.Errorf("failed to parse generated ID %q: %v", generated, err)
			}
			if parsedPrefix != tt.prefix {
				t.Errorf("parsed prefix %q doesn't match expected %q", parsedPrefix, tt.prefix)
			}
			if len(shortID) != DefaultLength {
				t.Errorf("short ID length %d doesn't match default %d", len(shortID), DefaultLength)
			}
		})
	}
}
