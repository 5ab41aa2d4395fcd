package main

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		in         string
		wantName   string
		wantParams []string
	}{
		{
			"PRIVMSG #x :a b c",
			"PRIVMSG",
			[]string{"#x", "a b c"},
		},
		{
			"NICK alice",
			"NICK",
			[]string{"alice"},
		},
		{
			"USER a 0 * :Alice",
			"USER",
			[]string{"a", "0", "*", "Alice"},
		},
		{
			"PING",
			"PING",
			nil,
		},
		{
			"",
			"",
			nil,
		},
		{
			"  JOIN   #chan  ",
			"JOIN",
			[]string{"#chan"},
		},
	}

	for _, test := range tests {
		got := parseLine(test.in)
		if got.name != test.wantName {
			t.Errorf("parseLine(%q).name = %q, wanted %q", test.in, got.name, test.wantName)
		}
		if !stringSlicesEqual(got.params, test.wantParams) {
			t.Errorf("parseLine(%q).params = %v, wanted %v", test.in, got.params, test.wantParams)
		}
	}
}
