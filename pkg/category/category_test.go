package category

import (
	"bufio"
	"os"
	"strings"
	"testing"
)

func TestPrecedenceTable(t *testing.T) {
	f, err := os.Open("testdata/precedence.md")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows int
	inBlock := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "```") {
			inBlock = !inBlock
			continue
		}
		if !inBlock || strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			t.Fatalf("malformed row %q", line)
		}
		name := strings.TrimSpace(parts[0])
		parent := strings.TrimSpace(parts[1])
		want, ok := Parse(strings.TrimSpace(parts[2]))
		if !ok {
			t.Fatalf("unknown category in row %q", line)
		}
		if got := Classify(name, parent); got != want {
			t.Errorf("Classify(%q, %q) = %v, want %v", name, parent, got, want)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if rows == 0 {
		t.Fatal("no rows parsed from precedence table")
	}
}

func TestClassifyMembers(t *testing.T) {
	// Every member of a list must classify as that list or an earlier one.
	for _, c := range []Category{Patriarch, Royal, Priestly} {
		for _, name := range Members(c) {
			got := Classify(name, "")
			if got == Unclassified || got > c {
				t.Errorf("Classify(%q) = %v, want %v or higher precedence", name, got, c)
			}
		}
	}
	for _, name := range Members(Tribe) {
		if got := Classify(name, TribeParent); got != Tribe && got != Patriarch {
			t.Errorf("Classify(%q, %q) = %v, want tribe", name, TribeParent, got)
		}
	}
}

func TestCategoryAttributes(t *testing.T) {
	tests := []struct {
		c     Category
		color string
		label string
		name  string
	}{
		{Patriarch, "#a78bfa", "Patriarchs", "patriarch"},
		{Tribe, "#60a5fa", "Tribes of Israel", "tribe"},
		{Royal, "#fde047", "Royal Line", "royal"},
		{Priestly, "#4ade80", "Priestly Line", "priestly"},
		{Unclassified, "#ffffff", "Other", "unclassified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Color(); got != tt.color {
				t.Errorf("Color() = %s, want %s", got, tt.color)
			}
			if got := tt.c.Label(); got != tt.label {
				t.Errorf("Label() = %s, want %s", got, tt.label)
			}
			if got := tt.c.String(); got != tt.name {
				t.Errorf("String() = %s, want %s", got, tt.name)
			}
			parsed, ok := Parse(tt.name)
			if !ok || parsed != tt.c {
				t.Errorf("Parse(%q) = %v, %v", tt.name, parsed, ok)
			}
		})
	}
}

func TestLegend(t *testing.T) {
	legend := Legend()
	if len(legend) != len(All) {
		t.Fatalf("legend has %d entries, want %d", len(legend), len(All))
	}
	if legend[0].Category != Patriarch || legend[len(legend)-1].Category != Unclassified {
		t.Errorf("legend order = %v", legend)
	}
}

func TestMembersIsCopy(t *testing.T) {
	m := Members(Patriarch)
	m[0] = "Cain"
	if Classify("Adam", "") != Patriarch {
		t.Error("mutating Members result changed classification")
	}
}
