package main

import "testing"

func TestTrimCRLF(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NICK alice\r\n", "NICK alice"},
		{"NICK alice\n", "NICK alice"},
		{"NICK alice\n\r", "NICK alice"},
		{"NICK alice", "NICK alice"},
		{"\r\n", ""},
		{"", ""},
	}

	for _, test := range tests {
		got := trimCRLF(test.in)
		if got != test.want {
			t.Errorf("trimCRLF(%q) = %q, wanted %q", test.in, got, test.want)
		}
	}
}

func TestIsValidNick(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice", true},
		{"Alice_42", true},
		{"", false},
		{"a b", false},
		{"a,b", false},
		{"a*b", false},
		{"a\x7Fb", false},
		{"a\x01b", false},
	}

	for _, test := range tests {
		got := isValidNick(test.in)
		if got != test.want {
			t.Errorf("isValidNick(%q) = %v, wanted %v", test.in, got, test.want)
		}
	}
}

func TestSplitNonEmpty(t *testing.T) {
	tests := []struct {
		in   string
		sep  byte
		want []string
	}{
		{"#a,#b,#c", ',', []string{"#a", "#b", "#c"}},
		{"#a,,#b", ',', []string{"#a", "#b"}},
		{",", ',', nil},
		{"", ',', nil},
	}

	for _, test := range tests {
		got := splitNonEmpty(test.in, test.sep)
		if !stringSlicesEqual(got, test.want) {
			t.Errorf("splitNonEmpty(%q, %q) = %v, wanted %v", test.in, test.sep, got, test.want)
		}
	}
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalizeChannel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chan", "#chan"},
		{"#chan", "#chan"},
		{"", "#"},
	}

	for _, test := range tests {
		got := normalizeChannel(test.in)
		if got != test.want {
			t.Errorf("normalizeChannel(%q) = %q, wanted %q", test.in, got, test.want)
		}
	}
}
