package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"jobscout/internal/domain"
)

// Dataset column order. History files are rejected as corrupt when their
// header does not match exactly.
var columns = []string{"title", "company", "location", "description", "salary", "url", "date_posted"}

func readDataset(path string) ([]domain.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(columns)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty file", path)
	}
	for i, col := range columns {
		if rows[0][i] != col {
			return nil, fmt.Errorf("read %s: unexpected header %v", path, rows[0])
		}
	}

	out := make([]domain.JobRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, domain.JobRecord{
			Title:       row[0],
			Company:     row[1],
			Location:    row[2],
			Description: row[3],
			Salary:      row[4],
			URL:         row[5],
			DatePosted:  row[6],
		})
	}
	return out, nil
}

func writeDataset(path string, recs []domain.JobRecord) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return err
	}
	for _, rec := range recs {
		row := []string{rec.Title, rec.Company, rec.Location, rec.Description, rec.Salary, rec.URL, rec.DatePosted}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
