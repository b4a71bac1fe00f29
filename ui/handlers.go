package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"polyheat/app"
	"polyheat/domain/core"
	"polyheat/domain/fit"
	"polyheat/domain/predicate"
	"polyheat/internal/report"
	"polyheat/ports"
)

// CompareBody is the JSON request of POST /compare
type CompareBody struct {
	Left    *fit.Result    `json:"left"`
	Right   *fit.Result    `json:"right"`
	Options CompareOptions `json:"options"`
}

// CompareOptions is the JSON-friendly subset of the pipeline options.
// Must-express entries are marker-name lists: a single name means "is
// positive", several names mean "all positive". Richer predicates are a
// library-level feature, not an HTTP one.
type CompareOptions struct {
	Annotations []string   `json:"annotations,omitempty"`
	Threshold   float64    `json:"threshold,omitempty"`
	MinDOF      int        `json:"min_dof,omitempty"`
	MaxDOF      int        `json:"max_dof,omitempty"`
	MustExpress [][]string `json:"must_express,omitempty"`

	RowFilter *RowFilter `json:"row_filter,omitempty"`

	ShowRowLabels    bool           `json:"show_row_labels,omitempty"`
	ShowColumnLabels bool           `json:"show_column_labels,omitempty"`
	Layout           string         `json:"layout,omitempty"`
	Passthrough      map[string]any `json:"passthrough,omitempty"`
}

// RowFilter restricts subjects to rows whose column value is in Values
type RowFilter struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

func (o CompareOptions) toRequest(left, right *fit.Result) app.CompareRequest {
	req := app.CompareRequest{
		Left:             left,
		Right:            right,
		Annotations:      o.Annotations,
		Threshold:        o.Threshold,
		MinDOF:           o.MinDOF,
		MaxDOF:           o.MaxDOF,
		ShowRowLabels:    o.ShowRowLabels,
		ShowColumnLabels: o.ShowColumnLabels,
		Layout:           ports.LayoutMode(o.Layout),
		Options:          o.Passthrough,
	}
	for _, names := range o.MustExpress {
		ps := make([]predicate.MarkerPredicate, len(names))
		for i, n := range names {
			ps[i] = predicate.Expressed(n)
		}
		if len(ps) == 1 {
			req.MustExpress = append(req.MustExpress, ps[0])
		} else if len(ps) > 1 {
			req.MustExpress = append(req.MustExpress, predicate.AllOf(ps...))
		}
	}
	if o.RowFilter != nil {
		req.RowFilter = predicate.In(o.RowFilter.Column, o.RowFilter.Values...)
	}
	return req
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var body CompareBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if body.Left == nil || body.Right == nil {
		httpError(w, http.StatusBadRequest, core.ErrEmptyResult)
		return
	}

	cmp, err := s.service.Compare(r.Context(), body.Options.toRequest(body.Left, body.Right))
	if err != nil {
		// Lookup failures mean the request named a column, marker, or
		// subject the fits do not define: a bad request, not a pipeline
		// outcome.
		status := http.StatusUnprocessableEntity
		switch {
		case core.IsInternalError(err):
			status = http.StatusInternalServerError
		case core.IsLookupError(err):
			status = http.StatusBadRequest
		}
		httpError(w, status, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "png":
		w.Header().Set("Content-Type", "image/png")
		if err := cmp.Graphic.WritePNG(w); err != nil {
			log.Printf("[ui] write png: %v", err)
		}
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(report.HTML(report.Build(cmp)))
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := s.exporter.Write(cmp.Diff, cmp.Categories, w); err != nil {
			log.Printf("[ui] write xlsx: %v", err)
		}
	case "json":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":         cmp.ID,
			"row_order":  cmp.RowOrder,
			"categories": cmp.Categories,
			"diff":       cmp.Diff,
			"warnings":   cmp.Warnings,
			"created_at": cmp.CreatedAt,
		})
	default:
		httpError(w, http.StatusBadRequest, errors.New("unknown format"))
	}
}

func httpError(w http.ResponseWriter, status int, err error) {
	log.Printf("[ui] %d: %v", status, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
