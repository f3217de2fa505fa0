package rules

import (
	"reflect"
	"testing"
)

func TestParseCallSimple(t *testing.T) {
	c, err := ParseCall("gs1checksum(gtin13)")
	if err != nil {
		t.Fatal(err)
	}
	want := Call{Name: "gs1checksum", Args: []string{"gtin13"}}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("got %+v, want %+v", c, want)
	}
}

func TestParseCallMultipleArgs(t *testing.T) {
	c, err := ParseCall("tablelookup(cpIndex,tdt64bitcpi,1,2)")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"cpIndex", "tdt64bitcpi", "1", "2"}
	if !reflect.DeepEqual(c.Args, want) {
		t.Errorf("got %+v, want %+v", c.Args, want)
	}
}

func TestParseCallQuotedArgWithComma(t *testing.T) {
	c, err := ParseCall(`concat(a,"b,c",d)`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", `"b,c"`, "d"}
	if !reflect.DeepEqual(c.Args, want) {
		t.Errorf("got %+v, want %+v", c.Args, want)
	}
}

func TestParseCallNoArgs(t *testing.T) {
	c, err := ParseCall("length()")
	if err != nil {
		t.Fatal(err)
	}
	if c.Args != nil {
		t.Errorf("got %+v, want nil args", c.Args)
	}
}

func TestParseCallMalformed(t *testing.T) {
	cases := []string{"nocall", "missing(close", "(noname)"}
	for _, s := range cases {
		if _, err := ParseCall(s); err == nil {
			t.Errorf("ParseCall(%q): expected error", s)
		}
	}
}

func TestParseCallUnterminatedQuote(t *testing.T) {
	if _, err := ParseCall(`concat('a)`); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestIsLiteral(t *testing.T) {
	if lit, ok := IsLiteral("'hello'"); !ok || lit != "hello" {
		t.Errorf("got (%q, %v)", lit, ok)
	}
	if lit, ok := IsLiteral(`"hello"`); !ok || lit != "hello" {
		t.Errorf("got (%q, %v)", lit, ok)
	}
	if _, ok := IsLiteral("companyPrefix"); ok {
		t.Error("bare identifier should not be a literal")
	}
	if _, ok := IsLiteral("'mismatched\""); ok {
		t.Error("mismatched quotes should not be a literal")
	}
}
