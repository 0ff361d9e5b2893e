package models

import "strconv"

// PromotionTable maps next-level codes to the ids of the Year and Section rows.
type PromotionTable struct {
	GraduatingThreshold int
	Years               map[string]string
	Sections            map[string]string
}

// Graduating reports whether a year code is past the final-year threshold.
func (t PromotionTable) Graduating(yearCode int) bool {
	return yearCode > t.GraduatingThreshold
}

// NextYearID resolves the year id for yearCode+1.
func (t PromotionTable) NextYearID(yearCode int) (string, bool) {
	id, ok := t.Years[strconv.Itoa(yearCode+1)]
	return id, ok && id != ""
}

// NextSectionID resolves the section id for sectionCode+100.
func (t PromotionTable) NextSectionID(sectionCode int) (string, bool) {
	id, ok := t.Sections[strconv.Itoa(sectionCode+100)]
	return id, ok && id != ""
}

// PromotionSummary counts per-student outcomes of one yearly update run.
type PromotionSummary struct {
	Processed int `json:"processed"`
	Promoted  int `json:"promoted"`
	Archived  int `json:"archived"`
	Skipped   int `json:"skipped"`
}
