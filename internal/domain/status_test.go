package domain

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		def   Status
		want  Status
	}{
		{input: "", def: StatusPublished, want: StatusPublished},
		{input: "  ", def: StatusActive, want: StatusActive},
		{input: "Draft", def: StatusPublished, want: StatusDraft},
		{input: "on-hold", def: StatusActive, want: Status("on-hold")},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.input, tc.def); got != tc.want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestStatusKnown(t *testing.T) {
	if !StatusArchived.Known() || Status("on-hold").Known() {
		t.Fatalf("unexpected Known results")
	}
}

func TestStatusNormalize(t *testing.T) {
	if got := Status("  Published ").Normalize(); got != StatusPublished {
		t.Fatalf("Normalize = %q", got)
	}
}
