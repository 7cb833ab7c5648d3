package calendar

import "go.uber.org/zap"

type importStats struct {
	totalEvents        int
	skippedMissingTime int
	skippedCancelled   int
	skippedAllDay      int
	skippedNotDaily    int
	skippedDuplicates  int
}

func (s *importStats) logSummary(log *zap.Logger, importedCount int) {
	totalSkipped := s.skippedMissingTime + s.skippedCancelled + s.skippedAllDay + s.skippedNotDaily + s.skippedDuplicates
	log.Info("calendar import summary",
		zap.Int("events", s.totalEvents),
		zap.Int("imported", importedCount),
		zap.Int("skipped", totalSkipped))
	if totalSkipped > 0 {
		log.Debug("calendar import skipped breakdown",
			zap.Int("cancelled", s.skippedCancelled),
			zap.Int("all_day", s.skippedAllDay),
			zap.Int("not_daily", s.skippedNotDaily),
			zap.Int("missing_time", s.skippedMissingTime),
			zap.Int("duplicates", s.skippedDuplicates))
	}
}
