package gcode

import (
	"strings"
	"testing"

	"github.com/dcervenkov/mpmd-metadata/internal/metadata"
)

var testBlock = []string{
	"; thumbnail begin",
	"W221",
	"W220 abcdef0123",
	"W222",
	"; thumbnail end",
	"",
}

func testMeta() *metadata.PrintMetadata {
	return &metadata.PrintMetadata{Material: "PLA", InfillDensity: 20}
}

func TestInjectMetadataLines(t *testing.T) {
	doc := &Document{Segments: []string{
		";Generated with Cura_SteamEngine 5.0\n;Filament used: 12.500m\nG28\n",
	}}
	meta := testMeta()

	Inject(doc, meta, nil)

	lines := strings.Split(doc.Segments[0], "\n")
	usage := -1
	for i, line := range lines {
		if line == ";FilamentUsed:12500.00" {
			usage = i
		}
	}
	if usage < 2 {
		t.Fatalf("usage line missing or too early, lines: %q", lines)
	}
	if lines[usage-1] != ";FilamentType:PLA" {
		t.Errorf("line before usage = %q, want material line", lines[usage-1])
	}
	if lines[usage-2] != ";InfillDensity:20" {
		t.Errorf("line two before usage = %q, want infill line", lines[usage-2])
	}
	if strings.Contains(doc.Segments[0], FilamentUsedMarker) {
		t.Error("original usage marker line was not replaced")
	}
	if meta.FilamentMeters != 12.5 {
		t.Errorf("captured filament length = %v m, want 12.5", meta.FilamentMeters)
	}
}

func TestInjectThumbnailAfterGeneratorLine(t *testing.T) {
	doc := &Document{Segments: []string{
		"M82\n;Generated with Cura_SteamEngine 5.0\nG28\n",
	}}

	Inject(doc, nil, testBlock)

	lines := strings.Split(doc.Segments[0], "\n")
	if lines[1] != ";Generated with Cura_SteamEngine 5.0" {
		t.Fatalf("generator line moved: %q", lines[1])
	}
	for i, want := range testBlock {
		if lines[2+i] != want {
			t.Errorf("block line %d = %q, want %q", i, lines[2+i], want)
		}
	}
	if lines[2+len(testBlock)] != "G28" {
		t.Errorf("expected G28 after block, got %q", lines[2+len(testBlock)])
	}
}

func TestInjectFirstGeneratorOccurrenceOnly(t *testing.T) {
	doc := &Document{Segments: []string{
		";Generated with Cura_SteamEngine 5.0\n;Generated with Cura_SteamEngine 5.0\nG28\n",
	}}

	Inject(doc, nil, testBlock)

	if got := strings.Count(doc.Segments[0], "W221"); got != 1 {
		t.Errorf("block inserted %d times, want 1", got)
	}
}

func TestInjectNoMarkersIsNoOp(t *testing.T) {
	original := "G28\nG1 X10 Y10\nM104 S200\n"
	doc := &Document{Segments: []string{original}}

	Inject(doc, testMeta(), testBlock)

	if doc.Segments[0] != original {
		t.Errorf("segment without markers changed:\ngot  %q\nwant %q", doc.Segments[0], original)
	}
}

func TestInjectNothingToInject(t *testing.T) {
	original := ";Generated with Cura_SteamEngine 5.0\n;Filament used: 1.000m\n"
	doc := &Document{Segments: []string{original}}

	Inject(doc, nil, nil)

	if doc.String() != original {
		t.Errorf("document changed with nothing to inject:\ngot  %q\nwant %q", doc.String(), original)
	}
}

func TestInjectUnparseableUsageValue(t *testing.T) {
	original := ";Filament used: unknown\nG28\n"
	doc := &Document{Segments: []string{original}}

	Inject(doc, testMeta(), nil)

	if doc.Segments[0] != original {
		t.Errorf("unparseable marker line was modified:\ngot  %q\nwant %q", doc.Segments[0], original)
	}
}

func TestInjectFractionalInfill(t *testing.T) {
	doc := &Document{Segments: []string{";Filament used: 0.750m\n"}}
	meta := &metadata.PrintMetadata{Material: "PETG", InfillDensity: 12.5}

	Inject(doc, meta, nil)

	if !strings.Contains(doc.Segments[0], ";InfillDensity:12.5") {
		t.Errorf("missing fractional infill line: %q", doc.Segments[0])
	}
	if !strings.Contains(doc.Segments[0], ";FilamentUsed:750.00") {
		t.Errorf("missing converted usage line: %q", doc.Segments[0])
	}
}

func TestInjectAcrossSegments(t *testing.T) {
	doc := &Document{Segments: []string{
		";Generated with Cura_SteamEngine 5.0\n;Filament used: 2.000m\n",
		";LAYER:0\nG1 X1\n",
		";LAYER:1\nG1 X2\n",
	}}

	Inject(doc, testMeta(), testBlock)

	if !strings.Contains(doc.Segments[0], "W221") {
		t.Error("thumbnail block missing from header segment")
	}
	if !strings.Contains(doc.Segments[0], ";FilamentUsed:2000.00") {
		t.Error("usage line missing from header segment")
	}
	for i, seg := range doc.Segments[1:] {
		if strings.Contains(seg, "W221") || strings.Contains(seg, ";FilamentUsed:") {
			t.Errorf("layer segment %d modified: %q", i+1, seg)
		}
	}
}
