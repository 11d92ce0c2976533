package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/waylightapp/waylight/internal/lightninglane"
	"github.com/waylightapp/waylight/internal/planning"
)

func sampleSummaries() []*planning.ParkRatingSummary {
	return []*planning.ParkRatingSummary{
		{
			ParkID:           "mk",
			ParkName:         "Magic Kingdom",
			AttractionCount:  2,
			RatedCount:       2,
			AverageRating:    4.25,
			MustDoCount:      4,
			ConsensusScore:   0.85,
			RecommendedDays:  2,
			DayJustification: "2 day(s) covers the group's 1-day minimum for this park",
			PriorityScore:    3.245,
			TopAttractions: []planning.AttractionInsight{
				{AttractionID: "space-mountain", Name: "Space Mountain", TotalRatings: 4, AverageRating: 4.5, MustDoCount: 3, ConsensusLevel: "high"},
			},
		},
		{
			ParkID:          "ep",
			ParkName:        "EPCOT",
			AttractionCount: 1,
			RecommendedDays: 1,
		},
	}
}

func TestExporter_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	exporter := NewExporter(Options{Format: FormatJSON, FilePath: path, PrettyJSON: true})

	report := TripReport{
		TripID:        "trip-1",
		TripName:      "Summer Trip",
		ParkSummaries: sampleSummaries(),
	}
	if err := exporter.Export(report); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}

	var decoded TripReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Export produced invalid JSON: %v", err)
	}
	if decoded.TripName != "Summer Trip" {
		t.Errorf("TripName = %q, want Summer Trip", decoded.TripName)
	}
	if len(decoded.ParkSummaries) != 2 {
		t.Errorf("ParkSummaries len = %d, want 2", len(decoded.ParkSummaries))
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("pretty JSON output is not indented")
	}
}

func TestExporter_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parks.csv")
	exporter := NewExporter(Options{Format: FormatCSV, FilePath: path})

	if err := exporter.Export(ParkSummaryRows(sampleSummaries())); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Export produced invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count = %d, want header + 2 rows", len(records))
	}
	if records[0][0] != "park_id" || records[0][1] != "park_name" {
		t.Errorf("header = %v, want csv tag names", records[0])
	}
	if records[1][0] != "mk" || records[1][1] != "Magic Kingdom" {
		t.Errorf("first row = %v", records[1])
	}
	// Floats render with two decimals.
	if records[1][4] != "4.25" {
		t.Errorf("average rating cell = %q, want 4.25", records[1][4])
	}
}

func TestExporter_CSVRequiresSlice(t *testing.T) {
	exporter := NewExporter(Options{Format: FormatCSV, FilePath: filepath.Join(t.TempDir(), "x.csv")})
	if err := exporter.Export("not a slice"); err == nil {
		t.Error("Export() error = nil, want slice requirement error")
	}
	if err := exporter.Export([]ParkSummaryRow{}); err == nil {
		t.Error("Export() error = nil, want empty data error")
	}
}

func TestExporter_OverwriteGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	exporter := NewExporter(Options{Format: FormatJSON, FilePath: path})

	if err := exporter.Export(map[string]string{"a": "b"}); err != nil {
		t.Fatalf("first Export() error = %v", err)
	}
	if err := exporter.Export(map[string]string{"a": "b"}); err == nil {
		t.Error("second Export() error = nil, want already-exists error")
	}

	overwriting := NewExporter(Options{Format: FormatJSON, FilePath: path, Overwrite: true})
	if err := overwriting.Export(map[string]string{"a": "c"}); err != nil {
		t.Errorf("overwriting Export() error = %v", err)
	}
}

func TestConflictRows(t *testing.T) {
	conflicts := []*planning.ConflictAnalysis{
		{
			AttractionID:   "space-mountain",
			AttractionName: "Space Mountain",
			ParkID:         "mk",
			ConflictType:   "rating",
			Severity:       "high",
			AffectedMembers: []planning.AffectedMember{
				{MemberID: "m1", Name: "Alice", Issue: "rated 5/5"},
				{MemberID: "m4", Name: "Drew", Issue: "rated 1/5"},
			},
			Resolution: "Most of the group wants this",
		},
	}

	rows := ConflictRows(conflicts)
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	if rows[0].AffectedMembers != "Alice (rated 5/5); Drew (rated 1/5)" {
		t.Errorf("AffectedMembers = %q", rows[0].AffectedMembers)
	}
}

func TestStrategyRows(t *testing.T) {
	sellOut := "11:30 AM"
	cost := 25.0
	strategy := &lightninglane.Strategy{
		MultiPassRecommendations: []lightninglane.Recommendation{
			{AttractionID: "seven-dwarfs-mine-train", Name: "Seven Dwarfs Mine Train", Priority: 10, GroupRating: 4.0, EstimatedMinutesSaved: 68, SellOutTime: &sellOut},
		},
		SinglePassRecommendations: []lightninglane.Recommendation{
			{AttractionID: "rise-of-the-resistance", Name: "Rise of the Resistance", Priority: 10, GroupRating: 4.5, EstimatedMinutesSaved: 108, PerPersonCost: &cost},
		},
	}

	rows := StrategyRows(strategy)
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].PassType != "MultiPass" || rows[0].SellOutTime != "11:30 AM" {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].PassType != "Single Pass" || rows[1].PerPersonCost != "$25" {
		t.Errorf("second row = %+v", rows[1])
	}
}

func TestAttractionInsightRows(t *testing.T) {
	rows := AttractionInsightRows(sampleSummaries())
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	if rows[0].ParkID != "mk" || rows[0].AttractionID != "space-mountain" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestRenderCharts(t *testing.T) {
	dir := t.TempDir()

	priorityPath := filepath.Join(dir, "priority.html")
	if err := RenderParkPriorityChart(sampleSummaries(), DefaultChartConfig(), priorityPath); err != nil {
		t.Fatalf("RenderParkPriorityChart() error = %v", err)
	}
	daysPath := filepath.Join(dir, "days.html")
	if err := RenderDayAllocationChart(sampleSummaries(), DefaultChartConfig(), daysPath); err != nil {
		t.Fatalf("RenderDayAllocationChart() error = %v", err)
	}

	for _, p := range []string{priorityPath, daysPath} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("Failed to read chart %s: %v", p, err)
		}
		if !strings.Contains(string(data), "echarts") {
			t.Errorf("chart %s does not embed echarts", p)
		}
	}
}
