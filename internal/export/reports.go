package export

import (
	"fmt"
	"strings"

	"github.com/waylightapp/waylight/internal/lightninglane"
	"github.com/waylightapp/waylight/internal/planning"
)

// ParkSummaryRow flattens a park summary for CSV export.
type ParkSummaryRow struct {
	ParkID          string  `csv:"park_id" json:"park_id"`
	ParkName        string  `csv:"park_name" json:"park_name"`
	AttractionCount int     `csv:"attraction_count" json:"attraction_count"`
	RatedCount      int     `csv:"rated_count" json:"rated_count"`
	AverageRating   float64 `csv:"average_rating" json:"average_rating"`
	MustDoCount     int     `csv:"must_do_count" json:"must_do_count"`
	AvoidCount      int     `csv:"avoid_count" json:"avoid_count"`
	ConsensusScore  float64 `csv:"consensus_score" json:"consensus_score"`
	ConflictCount   int     `csv:"conflict_count" json:"conflict_count"`
	RecommendedDays float64 `csv:"recommended_days" json:"recommended_days"`
	PriorityScore   float64 `csv:"priority_score" json:"priority_score"`
	Justification   string  `csv:"justification" json:"justification"`
}

// AttractionInsightRow flattens one ranked attraction for CSV export.
type AttractionInsightRow struct {
	ParkID         string  `csv:"park_id" json:"park_id"`
	AttractionID   string  `csv:"attraction_id" json:"attraction_id"`
	Name           string  `csv:"name" json:"name"`
	TotalRatings   int     `csv:"total_ratings" json:"total_ratings"`
	AverageRating  float64 `csv:"average_rating" json:"average_rating"`
	MustDoCount    int     `csv:"must_do_count" json:"must_do_count"`
	AvoidCount     int     `csv:"avoid_count" json:"avoid_count"`
	ConsensusLevel string  `csv:"consensus_level" json:"consensus_level"`
}

// ConflictRow flattens one conflict for CSV export.
type ConflictRow struct {
	AttractionID    string `csv:"attraction_id" json:"attraction_id"`
	AttractionName  string `csv:"attraction_name" json:"attraction_name"`
	ParkID          string `csv:"park_id" json:"park_id"`
	ConflictType    string `csv:"conflict_type" json:"conflict_type"`
	Severity        string `csv:"severity" json:"severity"`
	AffectedMembers string `csv:"affected_members" json:"affected_members"`
	Resolution      string `csv:"resolution" json:"resolution"`
}

// StrategyRow flattens one Lightning Lane recommendation for CSV export.
type StrategyRow struct {
	PassType              string  `csv:"pass_type" json:"pass_type"`
	AttractionID          string  `csv:"attraction_id" json:"attraction_id"`
	Name                  string  `csv:"name" json:"name"`
	Priority              float64 `csv:"priority" json:"priority"`
	GroupRating           float64 `csv:"group_rating" json:"group_rating"`
	EstimatedMinutesSaved int     `csv:"estimated_minutes_saved" json:"estimated_minutes_saved"`
	SellOutTime           string  `csv:"sell_out_time" json:"sell_out_time"`
	PerPersonCost         string  `csv:"per_person_cost" json:"per_person_cost"`
	Reasoning             string  `csv:"reasoning" json:"reasoning"`
}

// ParkSummaryRows flattens park summaries for export.
func ParkSummaryRows(summaries []*planning.ParkRatingSummary) []ParkSummaryRow {
	rows := make([]ParkSummaryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = ParkSummaryRow{
			ParkID:          s.ParkID,
			ParkName:        s.ParkName,
			AttractionCount: s.AttractionCount,
			RatedCount:      s.RatedCount,
			AverageRating:   s.AverageRating,
			MustDoCount:     s.MustDoCount,
			AvoidCount:      s.AvoidCount,
			ConsensusScore:  s.ConsensusScore,
			ConflictCount:   s.ConflictCount,
			RecommendedDays: s.RecommendedDays,
			PriorityScore:   s.PriorityScore,
			Justification:   s.DayJustification,
		}
	}
	return rows
}

// AttractionInsightRows flattens every park's ranked attraction list.
func AttractionInsightRows(summaries []*planning.ParkRatingSummary) []AttractionInsightRow {
	var rows []AttractionInsightRow
	for _, s := range summaries {
		for _, insight := range s.TopAttractions {
			rows = append(rows, AttractionInsightRow{
				ParkID:         s.ParkID,
				AttractionID:   insight.AttractionID,
				Name:           insight.Name,
				TotalRatings:   insight.TotalRatings,
				AverageRating:  insight.AverageRating,
				MustDoCount:    insight.MustDoCount,
				AvoidCount:     insight.AvoidCount,
				ConsensusLevel: insight.ConsensusLevel,
			})
		}
	}
	return rows
}

// ConflictRows flattens conflicts for export.
func ConflictRows(conflicts []*planning.ConflictAnalysis) []ConflictRow {
	rows := make([]ConflictRow, len(conflicts))
	for i, c := range conflicts {
		names := make([]string, len(c.AffectedMembers))
		for j, m := range c.AffectedMembers {
			names[j] = fmt.Sprintf("%s (%s)", m.Name, m.Issue)
		}
		rows[i] = ConflictRow{
			AttractionID:    c.AttractionID,
			AttractionName:  c.AttractionName,
			ParkID:          c.ParkID,
			ConflictType:    c.ConflictType,
			Severity:        c.Severity,
			AffectedMembers: strings.Join(names, "; "),
			Resolution:      c.Resolution,
		}
	}
	return rows
}

// StrategyRows flattens a day's Lightning Lane strategy for export.
func StrategyRows(strategy *lightninglane.Strategy) []StrategyRow {
	var rows []StrategyRow
	appendRecs := func(passType string, recs []lightninglane.Recommendation) {
		for _, rec := range recs {
			row := StrategyRow{
				PassType:              passType,
				AttractionID:          rec.AttractionID,
				Name:                  rec.Name,
				Priority:              rec.Priority,
				GroupRating:           rec.GroupRating,
				EstimatedMinutesSaved: rec.EstimatedMinutesSaved,
				Reasoning:             rec.Reasoning,
			}
			if rec.SellOutTime != nil {
				row.SellOutTime = *rec.SellOutTime
			}
			if rec.PerPersonCost != nil {
				row.PerPersonCost = fmt.Sprintf("$%.0f", *rec.PerPersonCost)
			}
			rows = append(rows, row)
		}
	}
	appendRecs("MultiPass", strategy.MultiPassRecommendations)
	appendRecs("Single Pass", strategy.SinglePassRecommendations)
	return rows
}

// TripReport bundles every analytics output for a single JSON export.
type TripReport struct {
	TripID          string                        `json:"trip_id"`
	TripName        string                        `json:"trip_name"`
	ParkSummaries   []*planning.ParkRatingSummary `json:"park_summaries"`
	Conflicts       []*planning.ConflictAnalysis  `json:"conflicts"`
	Recommendations *planning.TripRecommendations `json:"recommendations"`
}
