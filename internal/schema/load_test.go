package schema

import "testing"

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<epcTagDataTranslation>
  <scheme name="sgtin-96" tagLength="96" optionKey="gs1companyprefixlength">
    <level type="BINARY" prefixMatch="00110000">
      <option optionKey="7" pattern="^00110000([01]{3})101([01]{24})([01]{20})([01]{38})$"
              grammar="'00110000' filter '101' companyPrefix itemReference serial">
        <field name="filter" seq="1" length="3" decimalMinimum="0" decimalMaximum="7" bitPadDir="LEFT"/>
        <field name="companyPrefix" seq="2" length="24" bitPadDir="LEFT"/>
        <field name="itemReference" seq="3" length="20" bitPadDir="LEFT"/>
        <field name="serial" seq="4" length="38" bitPadDir="LEFT"/>
      </option>
    </level>
    <level type="PURE_IDENTITY" prefixMatch="urn:epc:id:sgtin:">
      <option optionKey="7" pattern="^urn:epc:id:sgtin:(\d{7})\.(\d{6})\.([0-9]{1,20})$"
              grammar="'urn:epc:id:sgtin:' companyPrefix '.' itemReference '.' serial">
        <field name="companyPrefix" seq="1" length="7" characterSet="[0-9]" padDir="LEFT" padChar="0"/>
        <field name="itemReference" seq="2" length="6" characterSet="[0-9]" padDir="LEFT" padChar="0"/>
        <field name="serial" seq="3" characterSet="[0-9]"/>
      </option>
    </level>
  </scheme>
</epcTagDataTranslation>`

func TestParseDocBuildsSchemeShape(t *testing.T) {
	schemes, err := parseDoc([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	if len(schemes) != 1 {
		t.Fatalf("got %d schemes, want 1", len(schemes))
	}
	s := schemes[0]
	if s.Name != "sgtin-96" || s.TagLength != 96 {
		t.Errorf("scheme = %+v", s)
	}
	if len(s.Levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(s.Levels))
	}
	for i := range s.Levels {
		if s.Levels[i].Scheme != s {
			t.Errorf("level %d: back-reference not wired to this scheme", i)
		}
	}

	bin := s.Levels[0]
	if bin.Type != LevelBinary {
		t.Fatalf("got level type %s, want BINARY", bin.Type)
	}
	opt := bin.Options[0]
	if opt.Compiled == nil {
		t.Fatal("pattern was not compiled")
	}
	filter := opt.FieldByName("filter")
	if filter == nil {
		t.Fatal("filter field not found")
	}
	if !filter.HasBitPadDir || filter.BitPadDir != PadLeft {
		t.Errorf("filter.BitPadDir = %+v", filter)
	}
	if !filter.HasDecimalMinimum || filter.DecimalMinimum != "0" {
		t.Errorf("filter.DecimalMinimum = %q", filter.DecimalMinimum)
	}

	pureID := s.Levels[1]
	cp := pureID.Options[0].FieldByName("companyPrefix")
	if cp.PadDir != PadLeft || !cp.HasPadChar || cp.PadChar != '0' {
		t.Errorf("companyPrefix pad config = %+v", cp)
	}
}

func TestFieldByNameMissing(t *testing.T) {
	opt := &Option{Fields: []Field{{Name: "a"}}}
	if opt.FieldByName("b") != nil {
		t.Error("expected nil for unknown field name")
	}
}

func TestParseDocRejectsMalformedXML(t *testing.T) {
	if _, err := parseDoc([]byte("<not-valid")); err == nil {
		t.Fatal("expected XML parse error")
	}
}

func TestLoadDirMergesAllFixtureFiles(t *testing.T) {
	set, err := LoadDir("../../testdata/schemes")
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Schemes) < 3 {
		t.Fatalf("got %d schemes from testdata/schemes, want at least 3", len(set.Schemes))
	}
	names := map[string]bool{}
	for _, s := range set.Schemes {
		names[s.Name] = true
	}
	for _, want := range []string{"sgtin-96", "sscc-96", "grai-96"} {
		if !names[want] {
			t.Errorf("missing scheme %q in loaded set", want)
		}
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	if _, err := LoadDir("../../testdata/does-not-exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDefaultEmbedsBundledSGTIN(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range set.Schemes {
		if s.Name == "sgtin-96" {
			found = true
		}
	}
	if !found {
		t.Error("embedded default bundle should include sgtin-96")
	}
}
