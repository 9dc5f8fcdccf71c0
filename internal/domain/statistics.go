package domain

import "strings"

// StatisticsRecord is one (source, status) bucket from the statistics endpoint.
type StatisticsRecord struct {
	Source      string
	Status      string
	RecordCount int
}

// SourceStatistics counts the work left and done for one feed.
type SourceStatistics struct {
	ToProcess int
	Processed int
}

// Statistics holds per-feed counters; every known feed is always present.
type Statistics map[Source]SourceStatistics

// AggregateStatistics folds raw buckets into per-feed counters. Pending
// records are work to process; verified and discarded ones are processed.
// Unknown feeds and statuses are ignored.
func AggregateStatistics(records []StatisticsRecord) Statistics {
	stats := make(Statistics, len(Sources()))
	for _, src := range Sources() {
		stats[src] = SourceStatistics{}
	}

	for _, rec := range records {
		src, ok := ParseSource(rec.Source)
		if !ok {
			continue
		}
		entry := stats[src]
		switch strings.ToUpper(rec.Status) {
		case APIStatusPending:
			entry.ToProcess += rec.RecordCount
		case APIStatusVerified, APIStatusDiscard:
			entry.Processed += rec.RecordCount
		}
		stats[src] = entry
	}

	return stats
}
