package domain

import (
	"strings"
	"time"
)

// TimeSlot is the portion of the day a DailyTimeEntry covers.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

// TaskType classifies the kind of B+R work performed.
type TaskType string

const (
	TaskResearch      TaskType = "research"
	TaskDevelopment   TaskType = "development"
	TaskTesting       TaskType = "testing"
	TaskDocumentation TaskType = "documentation"
	TaskAnalysis      TaskType = "analysis"
	TaskPrototyping   TaskType = "prototyping"
	TaskExperiment    TaskType = "experiment"
)

// genericPhrases is the closed list of descriptions too generic to count
// as a meaningful B+R record, even if long enough.
var genericPhrases = []string{
	"praca nad projektem",
	"prace projektowe",
	"zadania programistyczne",
	"codzienne obowiązki",
	"various tasks",
	"general work",
	"praca biurowa",
}

// brKeywords is a non-exhaustive set of domain keywords that, combined
// with the 50-character floor, satisfy the "recognisable B+R description"
// invariant for descriptions under 100 characters.
var brKeywords = []string{
	"badan", "eksperyment", "prototyp", "hipotez", "algorytm", "model",
	"testów", "testow", "walidac", "analiz", "metodyk", "innowac",
	"rozwojow", "badawcz",
}

// DailyTimeEntry records B+R work for one worker on one project-day.
type DailyTimeEntry struct {
	ProjectCode  string    `json:"project_code"`
	Worker       string    `json:"worker"`
	Date         time.Time `json:"date"`
	Slot         TimeSlot  `json:"slot"`
	Hours        float64   `json:"hours"`
	TaskType     TaskType  `json:"task_type"`
	Description  string    `json:"description"`
	CommitRefs   []string  `json:"commit_refs,omitempty"`
}

// Validate checks DailyTimeEntry's structural invariants from spec.md §3.
func (e DailyTimeEntry) Validate() (ok bool, message string) {
	if e.Hours < 0.5 || e.Hours > 12 {
		return false, "hours must be within [0.5, 12]"
	}
	trimmed := strings.TrimSpace(e.Description)
	if len(trimmed) < 50 {
		return false, "description must be at least 50 characters"
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range genericPhrases {
		if strings.Contains(lower, phrase) && len(trimmed) < 100 {
			return false, "description is too generic for a B+R record"
		}
	}
	if len(trimmed) >= 100 {
		return true, ""
	}
	for _, kw := range brKeywords {
		if strings.Contains(lower, kw) {
			return true, ""
		}
	}
	return false, "description must reference a B+R keyword or be at least 100 characters"
}
