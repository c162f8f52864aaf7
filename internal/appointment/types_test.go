package appointment

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a,,b", []string{"a", "", "b"}},
		{"health", []string{"health"}},
		{" work , ", []string{"work", ""}},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseTags(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinTags(t *testing.T) {
	if got := JoinTags([]string{"a", "b"}); got != "a, b" {
		t.Errorf("JoinTags = %q, want %q", got, "a, b")
	}
	if got := ParseTags(JoinTags([]string{"x", "y z"})); !reflect.DeepEqual(got, []string{"x", "y z"}) {
		t.Errorf("round trip = %q", got)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{input: "High", want: PriorityHigh},
		{input: "middle", want: PriorityMiddle},
		{input: "medium", want: PriorityMiddle},
		{input: " LOW ", want: PriorityLow},
		{input: "urgent", want: PriorityMiddle, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePriority(%q) err = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	for _, p := range Priorities {
		back, err := ParsePriority(p.String())
		if err != nil || back != p {
			t.Errorf("ParsePriority(%q) = %v, %v", p.String(), back, err)
		}
	}
}

func TestEqual(t *testing.T) {
	a := Appointment{ID: 1, Description: "x", Tags: []string{"a"}}
	b := a.clone()
	if !a.Equal(b) {
		t.Error("clone should be equal")
	}
	b.Tags[0] = "b"
	if a.Equal(b) {
		t.Error("different tags should not be equal")
	}
}
