package yard

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ReportHeader lists the exported report columns in order.
var ReportHeader = []string{
	"VehicleReg", "Supplier", "Status",
	"Arrival", "CalledIn", "UnloadStart", "UnloadEnd", "Departed",
	"WaitTime(min)", "UnloadDuration(min)", "Dock", "Driver", "ASN",
}

const notAvailable = "N/A"

// ProjectRow flattens one vehicle into report cells, ordered per
// ReportHeader. Unknown suppliers degrade to a placeholder, missing
// timestamps and durations to "N/A".
func ProjectRow(v *Vehicle, s *Snapshot, loc *time.Location) []string {
	supplier, ok := s.SupplierName(v.SupplierID)
	if !ok {
		supplier = UnknownSupplierName
	}

	return []string{
		v.RegistrationNumber,
		supplier,
		s.StatusLabel(v.Status),
		formatMillis(&v.Timestamps.Arrival, loc),
		formatMillis(v.Timestamps.CalledIn, loc),
		formatMillis(v.Timestamps.UnloadingStart, loc),
		formatMillis(v.Timestamps.UnloadingEnd, loc),
		formatMillis(v.Timestamps.Departed, loc),
		formatMinutes(WaitTime(v)),
		formatMinutes(UnloadDuration(v)),
		v.AssignedDock,
		v.DriverName,
		v.ASN,
	}
}

// ProjectRows flattens the whole snapshot in collection order.
func ProjectRows(s *Snapshot, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(s.Vehicles))
	for _, v := range s.Vehicles {
		rows = append(rows, ProjectRow(v, s, loc))
	}
	return rows
}

// WriteCSV serializes the header and rows as delimited text. Fields holding
// the separator, quotes, or newlines are quoted with internal quotes doubled.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMillis(ts *int64, loc *time.Location) string {
	if ts == nil {
		return notAvailable
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(*ts).In(loc).Format("2006-01-02 15:04:05")
}

func formatMinutes(d time.Duration, ok bool) string {
	if !ok {
		return notAvailable
	}
	return fmt.Sprintf("%d", Minutes(d))
}
