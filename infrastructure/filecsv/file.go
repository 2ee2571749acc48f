package filecsv

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"music-contest/domain/model"
)

var exportHeader = []string{
	"submission_id", "contest_id", "user_id", "user_name",
	"song_name", "platform", "url", "created_at",
}

// WriteSubmissions streams a contest's submissions as CSV, header first.
func WriteSubmissions(w io.Writer, subs []*model.Submission) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, sub := range subs {
		record := []string{
			strconv.FormatInt(sub.SubmissionID, 10),
			sub.ContestID,
			sub.UserID,
			sub.UserName,
			sub.SongName,
			sub.Platform,
			sub.URL,
			sub.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
