// Package fit holds the caller-owned result structures of the upstream
// statistical model and the keyed matrix/metadata tables the comparison
// pipeline works on. The pipeline never mutates a Result; every
// operation allocates fresh tables scoped to one invocation.
package fit

import (
	"encoding/json"
	"fmt"
	"io"

	"polyheat/domain/category"
	"polyheat/domain/core"
)

// Result is a fitted model result: the per-subject, per-category mean
// posterior probability of differential response (MeanGamma), the
// category-definition table (including the reserved all-zero null
// category), and subject metadata keyed by IDColumn.
type Result struct {
	MeanGamma  Matrix         `json:"mean_gamma"`
	Categories category.Table `json:"categories"`
	Metadata   Metadata       `json:"metadata"`
	IDColumn   string         `json:"id_column"`
}

// NullLabel returns the reserved all-negative category label of this fit's panel
func (r *Result) NullLabel() category.Label {
	return category.NullLabel(len(r.Categories.Markers))
}

// Validate ensures the result exposes the shape the pipeline requires
func (r *Result) Validate() error {
	if r == nil {
		return core.ErrEmptyResult
	}
	if err := r.MeanGamma.Validate(); err != nil {
		return fmt.Errorf("mean gamma: %w", err)
	}
	if r.Categories.Len() == 0 {
		return fmt.Errorf("categories: %w", core.ErrEmptyResult)
	}
	if r.IDColumn == "" {
		return core.NewLookupError(core.ErrColumnNotFound, "id column")
	}
	if r.Metadata.Len() > 0 && !r.Metadata.HasColumn(r.IDColumn) {
		return core.NewLookupError(core.ErrColumnNotFound, r.IDColumn)
	}
	return nil
}

// ReadResult decodes a fit result from JSON
func ReadResult(rd io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(rd).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode fit result: %w", err)
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}
