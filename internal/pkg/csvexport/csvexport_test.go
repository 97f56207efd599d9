package csvexport

import (
	"strings"
	"testing"
)

func TestEscapeQuotesAndNewlines(t *testing.T) {
	got := escape("a,\"b\nc\"")
	want := "\"a,\"\"b\nc\"\"\""
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPlainFieldsAreNotQuoted(t *testing.T) {
	if got := escape("plain"); got != "plain" {
		t.Fatalf("expected unquoted field, got %q", got)
	}
}

func TestStringRendersHeaderAndRows(t *testing.T) {
	out := String(
		[]string{"id", "amount", "notes"},
		[][]interface{}{
			{"p1", 1200.5, "weekly payout"},
			{"p2", 80.0, nil},
		},
	)

	want := "id,amount,notes\np1,1200.50,weekly payout\np2,80.00,\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestSingleTrailingNewline(t *testing.T) {
	out := String([]string{"id"}, [][]interface{}{{"a"}})
	if !strings.HasSuffix(out, "a\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected exactly one trailing newline, got %q", out)
	}
}

func TestNilRendersEmpty(t *testing.T) {
	out := String([]string{"a", "b"}, [][]interface{}{{nil, "x"}})
	if out != "a,b\n,x\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
