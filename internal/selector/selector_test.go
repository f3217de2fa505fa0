package selector

import (
	"regexp"
	"testing"

	"github.com/epcglobal/tdtengine/internal/schema"
)

func buildSet() *schema.Set {
	sgtin := &schema.Scheme{Name: "sgtin-96", TagLength: 96, OptionKey: "gs1companyprefixlength"}
	binLevel := schema.Level{
		Type:        schema.LevelBinary,
		PrefixMatch: "00110000",
		Scheme:      sgtin,
		Options: []schema.Option{
			{OptionKey: "7", Pattern: `^00110000.*$`, Compiled: regexp.MustCompile(`^00110000.*$`)},
		},
	}
	aiLevel := schema.Level{
		Type:        schema.LevelLegacyAI,
		PrefixMatch: "gtin=",
		Scheme:      sgtin,
		Options: []schema.Option{
			{OptionKey: "7", Pattern: `^gtin=.*$`, Compiled: regexp.MustCompile(`^gtin=.*$`)},
		},
	}
	sgtin.Levels = []schema.Level{binLevel, aiLevel}
	sgtin.Levels[0].Scheme = sgtin
	sgtin.Levels[1].Scheme = sgtin

	set := &schema.Set{Schemes: []*schema.Scheme{sgtin}}
	for li := range sgtin.Levels {
		for oi := range sgtin.Levels[li].Options {
			set.Triples = append(set.Triples, schema.Triple{
				Scheme: sgtin,
				Level:  &sgtin.Levels[li],
				Option: &sgtin.Levels[li].Options[oi],
			})
		}
	}
	return set
}

func TestSelectBinaryByPrefixNoHintsNeeded(t *testing.T) {
	set := buildSet()
	triple, err := Select(set, "00110000"+"000000000000000000000000000000000000000000000000000000000000000000000000000000000000", Hints{})
	if err != nil {
		t.Fatal(err)
	}
	if triple.Level.Type != schema.LevelBinary {
		t.Errorf("got level %s, want BINARY", triple.Level.Type)
	}
}

func TestSelectTextLevelRequiresOptionKeyHint(t *testing.T) {
	set := buildSet()
	if _, err := Select(set, "gtin=1", Hints{}); err == nil {
		t.Fatal("expected NoMatchError: gs1companyprefixlength hint is required for a text-keyed level")
	}
	triple, err := Select(set, "gtin=1", Hints{"gs1companyprefixlength": "7"})
	if err != nil {
		t.Fatal(err)
	}
	if triple.Option.OptionKey != "7" {
		t.Errorf("got optionKey %q, want %q", triple.Option.OptionKey, "7")
	}
}

func TestSelectNoMatch(t *testing.T) {
	set := buildSet()
	_, err := Select(set, "totally-unrecognized-identifier", Hints{})
	if err == nil {
		t.Fatal("expected NoMatchError")
	}
	if _, ok := err.(*NoMatchError); !ok {
		t.Errorf("got %T, want *NoMatchError", err)
	}
}

func TestSelectTagLengthHintNarrowsCandidates(t *testing.T) {
	set := buildSet()
	_, err := Select(set, "00110000"+"000000000000000000000000000000000000000000000000000000000000000000000000000000000000", Hints{"taglength": "64"})
	if err == nil {
		t.Fatal("expected no match: taglength hint excludes the 96-bit scheme")
	}
}

func TestSelectOutputResolvesByOptionKey(t *testing.T) {
	set := buildSet()
	triple, err := SelectOutput(set, "sgtin-96", "7", schema.LevelBinary)
	if err != nil {
		t.Fatal(err)
	}
	if triple.Level.Type != schema.LevelBinary {
		t.Errorf("got %s, want BINARY", triple.Level.Type)
	}
}

func TestSelectOutputNoSuchLevel(t *testing.T) {
	set := buildSet()
	if _, err := SelectOutput(set, "sgtin-96", "7", schema.LevelONSHostname); err == nil {
		t.Fatal("expected error: scheme has no ONS_HOSTNAME level")
	}
}
