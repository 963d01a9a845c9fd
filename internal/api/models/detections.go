package models

import "time"

// Detection is one logged query decision.
type Detection struct {
	ID         int64     `json:"id"`
	ObservedAt time.Time `json:"observed_at"`
	QName      string    `json:"qname"`
	Entry      string    `json:"entry,omitempty"`
	Outcome    string    `json:"outcome"`
	RCode      string    `json:"rcode"`
	Client     string    `json:"client,omitempty"`
}

// EntryHits is how often a blocklist entry matched.
type EntryHits struct {
	Entry string `json:"entry"`
	Hits  int64  `json:"hits"`
}

// DetectionSummary aggregates the detection log.
type DetectionSummary struct {
	Total      int64            `json:"total"`
	ByOutcome  map[string]int64 `json:"by_outcome"`
	TopEntries []EntryHits      `json:"top_entries"`
	First      *time.Time       `json:"first,omitempty"`
	Last       *time.Time       `json:"last,omitempty"`
}

// DetectionsResponse is the API response for GET /detections.
type DetectionsResponse struct {
	Detections []Detection      `json:"detections"`
	Count      int              `json:"count"`
	Summary    DetectionSummary `json:"summary"`
}
