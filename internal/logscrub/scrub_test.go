package logscrub

import (
	"strings"
	"testing"
)

func TestLineReplacesUUIDsAndAddresses(t *testing.T) {
	t.Parallel()

	s := New("pepper")

	in := "cluster 5d5892d4-1f74-4ccf-91af-548dfc9767aa contacted from 10.0.0.1"
	out := s.Line(in)

	if strings.Contains(out, "5d5892d4") {
		t.Fatalf("UUID survived scrubbing: %q", out)
	}

	if strings.Contains(out, "10.0.0.1") {
		t.Fatalf("IP address survived scrubbing: %q", out)
	}

	if !strings.HasPrefix(out, "cluster ") || !strings.Contains(out, " contacted from ") {
		t.Fatalf("surrounding text was altered: %q", out)
	}
}

func TestLineIsDeterministicPerSalt(t *testing.T) {
	t.Parallel()

	line := "request from 192.168.1.20 and again 192.168.1.20"

	out := New("salt-a").Line(line)

	fields := strings.Fields(out)
	if fields[2] != fields[5] {
		t.Fatalf("same address mapped to different tokens: %q", out)
	}

	other := New("salt-b").Line(line)
	if out == other {
		t.Fatal("different salts produced identical output")
	}
}

func TestLineWithoutIdentifiersIsUntouched(t *testing.T) {
	t.Parallel()

	line := "plain log line, version 1.2 build 345"
	if got := New("x").Line(line); got != line {
		t.Fatalf("got %q, want %q", got, line)
	}
}

func TestCopyCountsLines(t *testing.T) {
	t.Parallel()

	in := "first 10.1.2.3\nsecond\nthird 5d5892d4-1f74-4ccf-91af-548dfc9767aa\n"

	var out strings.Builder

	n, err := New("k").Copy(&out, strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n != 3 {
		t.Fatalf("got %d lines, want 3", n)
	}

	if strings.Contains(out.String(), "10.1.2.3") {
		t.Fatalf("address survived: %q", out.String())
	}

	if got := strings.Count(out.String(), "\n"); got != 3 {
		t.Fatalf("output has %d newlines, want 3", got)
	}
}

func TestNewSalt(t *testing.T) {
	t.Parallel()

	a, err := NewSalt()
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewSalt()
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 2*saltBytes {
		t.Fatalf("salt %q has wrong length", a)
	}

	if a == b {
		t.Fatal("two fresh salts are identical")
	}
}
