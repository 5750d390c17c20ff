package tasks

import "testing"

func TestParseCleanEmptyIsNone(t *testing.T) {
	c, err := ParseClean("")
	if err != nil {
		t.Fatalf("ParseClean: %v", err)
	}
	if c != CleanNone {
		t.Fatalf("ParseClean(\"\") = %v, want CleanNone", c)
	}
}

func TestParseCleanAllExpandsToEveryBit(t *testing.T) {
	c, err := ParseClean("all")
	if err != nil {
		t.Fatalf("ParseClean: %v", err)
	}
	if c != CleanAll {
		t.Fatalf("ParseClean(\"all\") = %v, want CleanAll", c)
	}
	for _, bit := range []Clean{Redownload, Reextract, Reconfigure, Rebuild} {
		if !c.Has(bit) {
			t.Fatalf("CleanAll missing bit %v", bit)
		}
	}
}

func TestParseCleanCommaSeparatedCaseInsensitive(t *testing.T) {
	c, err := ParseClean(" Redownload , REBUILD ")
	if err != nil {
		t.Fatalf("ParseClean: %v", err)
	}
	if !c.Has(Redownload) || !c.Has(Rebuild) {
		t.Fatalf("ParseClean mixed case = %v, want redownload|rebuild", c)
	}
	if c.Has(Reextract) || c.Has(Reconfigure) {
		t.Fatalf("ParseClean set unexpected bits: %v", c)
	}
}

func TestParseCleanUnknownStage(t *testing.T) {
	if _, err := ParseClean("bogus"); err == nil {
		t.Fatalf("expected error for unknown clean stage")
	}
}

func TestCleanStringRoundTrips(t *testing.T) {
	c, err := ParseClean("reextract,rebuild")
	if err != nil {
		t.Fatalf("ParseClean: %v", err)
	}
	if got, want := c.String(), "reextract,rebuild"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestCleanStringNone(t *testing.T) {
	if got := CleanNone.String(); got != "none" {
		t.Fatalf("CleanNone.String() = %q, want \"none\"", got)
	}
}
