package planning

import (
	"fmt"
	"sort"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// Conflict types.
const (
	ConflictTypeRating     = "rating"
	ConflictTypePreference = "preference"
	ConflictTypeHeight     = "height"
	ConflictTypeIntensity  = "intensity"
)

// Conflict severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// AffectedMember names one party member involved in a conflict, with a
// short description of their issue.
type AffectedMember struct {
	MemberID string
	Name     string
	Issue    string
}

// ConflictAnalysis describes one detected disagreement over an attraction.
type ConflictAnalysis struct {
	AttractionID    string
	AttractionName  string
	ParkID          string
	ConflictType    string // rating, preference, height, intensity
	AffectedMembers []AffectedMember
	Severity        string // low, medium, high
	Resolution      string
}

// severityRank orders severities for sorting, highest first.
func severityRank(severity string) int {
	switch severity {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// IdentifyConflicts scans per-attraction ratings for disagreement
// patterns. A single attraction can contribute up to three conflicts, one
// per type, when all conditions hold. Results are sorted by severity,
// highest first.
func (a *Analytics) IdentifyConflicts(ratings []*models.ActivityRating, summaries []*models.ActivityRatingSummary, members []*models.TravelingPartyMember) []*ConflictAnalysis {
	grouped := ratingsByAttraction(ratings)
	memberNames := make(map[string]string, len(members))
	for _, m := range members {
		memberNames[m.ID] = m.Name
	}

	var conflicts []*ConflictAnalysis
	for _, summary := range summaries {
		attraction, ok := a.catalog.Attraction(summary.AttractionID)
		if !ok {
			continue
		}
		attractionRatings := grouped[summary.AttractionID]

		if c := ratingConflict(attraction, summary, attractionRatings, memberNames); c != nil {
			conflicts = append(conflicts, c)
		}
		if c := heightConflict(attraction, summary, attractionRatings, memberNames); c != nil {
			conflicts = append(conflicts, c)
		}
		if c := intensityConflict(attraction, summary, attractionRatings, memberNames); c != nil {
			conflicts = append(conflicts, c)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if severityRank(conflicts[i].Severity) != severityRank(conflicts[j].Severity) {
			return severityRank(conflicts[i].Severity) > severityRank(conflicts[j].Severity)
		}
		return conflicts[i].AttractionName < conflicts[j].AttractionName
	})
	return conflicts
}

// memberName resolves a member ID, falling back to "Unknown" for members
// no longer in the party.
func memberName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown"
}

// ratingConflict triggers only when the upstream summary already flags
// conflict-level consensus AND the raw rating spread is 3 or more.
func ratingConflict(attraction *models.Attraction, summary *models.ActivityRatingSummary, ratings []*models.ActivityRating, names map[string]string) *ConflictAnalysis {
	if summary.ConsensusLevel != models.ConsensusConflict || len(ratings) == 0 {
		return nil
	}

	minRating, maxRating := ratings[0].Rating, ratings[0].Rating
	for _, r := range ratings {
		if r.Rating < minRating {
			minRating = r.Rating
		}
		if r.Rating > maxRating {
			maxRating = r.Rating
		}
	}
	spread := maxRating - minRating
	if spread < 3 {
		return nil
	}

	severity := SeverityMedium
	if spread >= 4 {
		severity = SeverityHigh
	}

	var affected []AffectedMember
	for _, r := range ratings {
		if r.Rating <= 2 || r.Rating == 5 {
			affected = append(affected, AffectedMember{
				MemberID: r.PartyMemberID,
				Name:     memberName(names, r.PartyMemberID),
				Issue:    fmt.Sprintf("rated %d/5", r.Rating),
			})
		}
	}

	var resolution string
	switch {
	case summary.AverageRating >= 3.5:
		resolution = "Most of the group wants this - try it, and schedule it early or late to minimize the time cost"
	case summary.AverageRating >= 2.5:
		resolution = "Make this one optional - those interested can ride while others explore nearby"
	default:
		resolution = "Consider skipping - interest is low and the disagreement is strong"
	}

	return &ConflictAnalysis{
		AttractionID:    attraction.ID,
		AttractionName:  attraction.Name,
		ParkID:          attraction.ParkID,
		ConflictType:    ConflictTypeRating,
		AffectedMembers: affected,
		Severity:        severity,
		Resolution:      resolution,
	}
}

// heightConflict triggers on partial restriction only: some members
// blocked by the height requirement, but not all.
func heightConflict(attraction *models.Attraction, summary *models.ActivityRatingSummary, ratings []*models.ActivityRating, names map[string]string) *ConflictAnalysis {
	if summary.HeightRestrictedCount <= 0 || summary.HeightRestrictedCount >= summary.TotalRatings {
		return nil
	}

	var affected []AffectedMember
	for _, r := range ratings {
		if !r.HeightRestrictionOk {
			affected = append(affected, AffectedMember{
				MemberID: r.PartyMemberID,
				Name:     memberName(names, r.PartyMemberID),
				Issue:    "does not meet the height requirement",
			})
		}
	}

	return &ConflictAnalysis{
		AttractionID:    attraction.ID,
		AttractionName:  attraction.Name,
		ParkID:          attraction.ParkID,
		ConflictType:    ConflictTypeHeight,
		AffectedMembers: affected,
		Severity:        SeverityMedium,
		Resolution:      "Use rider/child swap so adults can ride in turns while one waits with smaller kids",
	}
}

// intensityConflict triggers on partial intensity concern: some members
// uncomfortable, but not all.
func intensityConflict(attraction *models.Attraction, summary *models.ActivityRatingSummary, ratings []*models.ActivityRating, names map[string]string) *ConflictAnalysis {
	if summary.IntensityConcernsCount <= 0 || summary.IntensityConcernsCount >= summary.TotalRatings {
		return nil
	}

	var affected []AffectedMember
	for _, r := range ratings {
		if !r.IntensityComfortable {
			affected = append(affected, AffectedMember{
				MemberID: r.PartyMemberID,
				Name:     memberName(names, r.PartyMemberID),
				Issue:    "uncomfortable with the intensity level",
			})
		}
	}

	return &ConflictAnalysis{
		AttractionID:    attraction.ID,
		AttractionName:  attraction.Name,
		ParkID:          attraction.ParkID,
		ConflictType:    ConflictTypeIntensity,
		AffectedMembers: affected,
		Severity:        SeverityLow,
		Resolution:      "Consider milder alternatives nearby for those sitting this one out",
	}
}
