// Package handler — export.go implements GET /export.
// Returns all of the user's trips and stops as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/drivemapz/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date", "trip_end_date",
	"stop_index", "stop_kind", "stop_title", "lat", "lng",
	"arrived_at", "departed_at", "stop_notes",
}

// exportRowResponse is the JSON shape of a single export row.
// Empty string fields are omitted; trips without stops carry a zero StopIndex.
type exportRowResponse struct {
	TripID        string     `json:"trip_id"`
	TripName      string     `json:"trip_name"`
	TripStartDate string     `json:"trip_start_date,omitempty"`
	TripEndDate   string     `json:"trip_end_date,omitempty"`
	StopIndex     int        `json:"stop_index,omitempty"`
	StopKind      string     `json:"stop_kind,omitempty"`
	StopTitle     string     `json:"stop_title,omitempty"`
	Lat           *float64   `json:"lat,omitempty"`
	Lng           *float64   `json:"lng,omitempty"`
	ArrivedAt     *time.Time `json:"arrived_at,omitempty"`
	DepartedAt    *time.Time `json:"departed_at,omitempty"`
	StopNotes     string     `json:"stop_notes,omitempty"`
}

// GetExport implements GET /export.
// It returns a flat table of every trip and stop the user owns.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context(), sessionUser(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, rows)
		return
	}

	out := make([]exportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSVExport encodes the rows as CSV and writes them as the response body.
func writeCSVExport(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(exportRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="drivemapz-export.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

func exportRowToResponse(row domain.ExportRow) exportRowResponse {
	return exportRowResponse{
		TripID:        row.TripID,
		TripName:      row.TripName,
		TripStartDate: row.TripStartDate,
		TripEndDate:   row.TripEndDate,
		StopIndex:     row.StopIndex,
		StopKind:      row.StopKind,
		StopTitle:     row.StopTitle,
		Lat:           row.Lat,
		Lng:           row.Lng,
		ArrivedAt:     row.ArrivedAt,
		DepartedAt:    row.DepartedAt,
		StopNotes:     row.StopNotes,
	}
}

// exportRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Nil pointer fields are encoded as empty strings.
func exportRowToCSVRecord(row domain.ExportRow) []string {
	index := ""
	if row.StopIndex > 0 {
		index = strconv.Itoa(row.StopIndex)
	}
	return []string{
		row.TripID,
		row.TripName,
		row.TripStartDate,
		row.TripEndDate,
		index,
		row.StopKind,
		row.StopTitle,
		formatOptionalFloat(row.Lat),
		formatOptionalFloat(row.Lng),
		formatOptionalTime(row.ArrivedAt),
		formatOptionalTime(row.DepartedAt),
		row.StopNotes,
	}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// formatOptionalFloat returns the shortest decimal representation of f, or "" if f is nil.
func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
