package xmlview

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var testNS = Namespaces{"a": "urn:test"}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestAbsentElement(t *testing.T) {
	e := New(nil, testNS)
	if e.Present() {
		t.Fatalf("absent view reported present")
	}
	if got := e.Query("./a:NoElement"); got != nil {
		t.Fatalf("Query on absent view = %v, want nil", got)
	}
	if got := e.Texts("./a:NoElement/text()"); got != nil {
		t.Fatalf("Texts on absent view = %v, want nil", got)
	}
	if _, ok := e.Lookup("./a:NoElement/text()"); ok {
		t.Fatalf("Lookup on absent view reported a match")
	}
	if e.Bool("./a:IsValid/text()") {
		t.Fatalf("Bool on absent view = true")
	}
	if e.Serialize() != "" {
		t.Fatalf("Serialize on absent view = %q", e.Serialize())
	}
}

func TestAbsentElementSkipsEvaluation(t *testing.T) {
	// An invalid expression would panic if it were compiled.
	e := New(nil, testNS)
	if got := e.Query("./a:["); got != nil {
		t.Fatalf("Query = %v, want nil", got)
	}
}

func TestParseAndSerialize(t *testing.T) {
	text := `<Element xmlns="suppressWarnings">Testing</Element>`
	e, err := Parse(text, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !e.Present() {
		t.Fatalf("parsed view not present")
	}
	if got := e.Texts("./text()"); len(got) != 1 || got[0] != "Testing" {
		t.Fatalf("Texts(./text()) = %v", got)
	}
	if got := e.Serialize(); got != text {
		t.Fatalf("Serialize = %q, want %q", got, text)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	text := `<Items xmlns="urn:test"><TotalResults>3</TotalResults><Item><ASIN>x</ASIN></Item></Items>`
	e, err := Parse(text, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	again, err := Parse(e.Serialize(), testNS)
	if err != nil {
		t.Fatalf("Parse(Serialize): %v", err)
	}
	if again.Serialize() != e.Serialize() {
		t.Fatalf("round trip mismatch:\n%s\n%s", again.Serialize(), e.Serialize())
	}
	if again.Text("./a:Item/a:ASIN/text()") != "x" {
		t.Fatalf("round-tripped view lost content")
	}
}

func TestParseMalformed(t *testing.T) {
	for _, text := range []string{"", "not xml", "<a><b></a>"} {
		_, err := Parse(text, testNS)
		if !errors.Is(err, ErrParse) {
			t.Fatalf("Parse(%q) err = %v, want ErrParse", text, err)
		}
	}
}

func TestQueryScopedToNamespace(t *testing.T) {
	e, err := Parse(`<Root xmlns="urn:test"><Name>n</Name></Root>`, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := e.Text("./a:Name/text()"); got != "n" {
		t.Fatalf("Text = %q, want n", got)
	}

	other, err := Parse(`<Root xmlns="urn:other"><Name>n</Name></Root>`, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, ok := other.Lookup("./a:Name/text()"); ok {
		t.Fatalf("namespace mismatch still matched %q", got)
	}
}

func TestScalarNoMatchIsEmpty(t *testing.T) {
	e, err := Parse(`<Root xmlns="urn:test"><Other>1</Other></Root>`, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := e.Text("./a:Missing/text()"); got != "" {
		t.Fatalf("Text = %q, want empty", got)
	}
	if _, ok := e.Lookup("./a:Missing/text()"); ok {
		t.Fatalf("Lookup reported a match")
	}
}

func TestAttributeQuery(t *testing.T) {
	e, err := Parse(`<Header xmlns="urn:test" Name="UserAgent" Value="ua"></Header>`, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := e.Text("./@Name"); got != "UserAgent" {
		t.Fatalf("@Name = %q", got)
	}
	if got := e.Text("./@Value"); got != "ua" {
		t.Fatalf("@Value = %q", got)
	}
}

func TestMissingNamespaceWarns(t *testing.T) {
	buf := captureLog(t)
	if _, err := Parse(`<Element>Testing</Element>`, testNS); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(buf.String(), "missing a namespace") {
		t.Fatalf("expected namespace warning, got %q", buf.String())
	}
}

func TestInheritedNamespaceDoesNotWarn(t *testing.T) {
	buf := captureLog(t)
	root, err := Parse(`<Root xmlns="urn:test"><Child>c</Child></Root>`, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	child := New(root.Query("./a:Child")[0], testNS)
	if !child.Present() {
		t.Fatalf("child not present")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected warning: %q", buf.String())
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "BrandName", want: `"BrandName"`},
		{in: `a"b`, want: `'a"b'`},
		{in: `a"b'c`, want: `concat("a", '"', "b'c")`},
	}
	for _, tt := range tests {
		if got := Literal(tt.in); got != tt.want {
			t.Errorf("Literal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLiteralInPredicate(t *testing.T) {
	e, err := Parse(`<Root xmlns="urn:test"><Set Kind='say "hi"'>1</Set><Set Kind="x">2</Set></Root>`, testNS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := e.Text("./a:Set[@Kind=" + Literal(`say "hi"`) + "]/text()")
	if got != "1" {
		t.Fatalf("predicate match = %q, want 1", got)
	}
}
