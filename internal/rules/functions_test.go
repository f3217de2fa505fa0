package rules

import (
	"testing"

	"github.com/epcglobal/tdtengine/internal/cptable"
	"github.com/epcglobal/tdtengine/internal/tokenmap"
)

func TestGS1ChecksumKnownValues(t *testing.T) {
	cases := []struct {
		gtin13 string
		want   string
	}{
		{"0003700030241", "4"}, // sgtin-96 seed test, check digit already stripped
		{"0030037000123", "3"},
	}
	for _, c := range cases {
		tm := tokenmap.New()
		tm.Set("gtin13", c.gtin13)
		got, err := Eval(Context{}, tm, "gs1checksum(gtin13)")
		if err != nil {
			t.Fatalf("gs1checksum(%q): %v", c.gtin13, err)
		}
		if got != c.want {
			t.Errorf("gs1checksum(%q) = %q, want %q", c.gtin13, got, c.want)
		}
	}
}

func TestGS1ChecksumRejectsNonDigits(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("gtin13", "00370A0302414")
	if _, err := Eval(Context{}, tm, "gs1checksum(gtin13)"); err == nil {
		t.Fatal("expected error for non-digit input")
	}
}

func TestSubstrTwoAndThreeArgs(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("itemReference", "030241")

	got, err := Eval(Context{}, tm, "substr(itemReference,0,1)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0" {
		t.Errorf("got %q, want %q", got, "0")
	}

	got, err = Eval(Context{}, tm, "substr(itemReference,1,5)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "30241" {
		t.Errorf("got %q, want %q", got, "30241")
	}

	got, err = Eval(Context{}, tm, "substr(itemReference,2)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0241" {
		t.Errorf("got %q, want %q", got, "0241")
	}
}

func TestSubstrOutOfRange(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("serial", "12")
	_, err := Eval(Context{}, tm, "substr(serial,0,5)")
	if err == nil {
		t.Fatal("expected OutOfRangeError")
	}
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Errorf("got %T, want *OutOfRangeError", err)
	}
}

func TestConcatLiteralsAndFields(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("indicator", "0")
	tm.Set("itemRefRemainder", "30241")
	got, err := Eval(Context{}, tm, "concat(indicator,itemRefRemainder)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "030241" {
		t.Errorf("got %q, want %q", got, "030241")
	}
}

func TestConcatWithQuotedLiteral(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("companyPrefix", "0037000")
	got, err := Eval(Context{}, tm, `concat(companyPrefix,'.')`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0037000." {
		t.Errorf("got %q, want %q", got, "0037000.")
	}
}

func TestConcatUnboundFieldFails(t *testing.T) {
	tm := tokenmap.New()
	_, err := Eval(Context{}, tm, "concat(neverBound)")
	if err == nil {
		t.Fatal("expected error for unbound field")
	}
}

func TestTableLookupSuccessAndMiss(t *testing.T) {
	table := cptable.Table{"1": "0037000"}
	ctx := Context{CompanyPrefixes: table}
	tm := tokenmap.New()
	tm.Set("cpIndex", "1")

	got, err := Eval(ctx, tm, "tablelookup(cpIndex,tdt64bitcpi,1,2)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0037000" {
		t.Errorf("got %q, want %q", got, "0037000")
	}

	tm.Set("cpIndex", "99")
	_, err = Eval(ctx, tm, "tablelookup(cpIndex,tdt64bitcpi,1,2)")
	if err == nil {
		t.Fatal("expected MissingTableKeyError")
	}
	if _, ok := err.(*MissingTableKeyError); !ok {
		t.Errorf("got %T, want *MissingTableKeyError", err)
	}
}

func TestTableLookupUnknownTable(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("cpIndex", "1")
	_, err := Eval(Context{}, tm, "tablelookup(cpIndex,notarealtable,1,2)")
	if err == nil {
		t.Fatal("expected TableNotFoundError")
	}
	if _, ok := err.(*TableNotFoundError); !ok {
		t.Errorf("got %T, want *TableNotFoundError", err)
	}
}

func TestLengthFunction(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("serial", "1041970")
	got, err := Eval(Context{}, tm, "length(serial)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "7" {
		t.Errorf("got %q, want %q", got, "7")
	}
}

func TestArithmeticFunctions(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("a", "10")
	tm.Set("b", "3")

	cases := map[string]string{
		"add(a,b)":      "13",
		"subtract(a,b)": "7",
		"multiply(a,b)": "30",
		"divide(a,b)":   "3",
		"mod(a,b)":      "1",
	}
	for fn, want := range cases {
		got, err := Eval(Context{}, tm, fn)
		if err != nil {
			t.Fatalf("%s: %v", fn, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", fn, got, want)
		}
	}
}

func TestArithmeticDivideByZero(t *testing.T) {
	tm := tokenmap.New()
	tm.Set("a", "10")
	tm.Set("b", "0")
	if _, err := Eval(Context{}, tm, "divide(a,b)"); err == nil {
		t.Fatal("expected ArithmeticError")
	}
}

func TestUnknownFunction(t *testing.T) {
	tm := tokenmap.New()
	if _, err := Eval(Context{}, tm, "nosuchfunction(a)"); err == nil {
		t.Fatal("expected error for unregistered function")
	}
}
