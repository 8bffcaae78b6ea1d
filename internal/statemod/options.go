// Package statemod reads and writes StateMod input files: diversion
// stations, diversion rights, delay tables and plans, plus their list file
// exports.
package statemod

import (
	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/listfile"
	"github.com/iudanet/statemod/internal/models"
)

// Options is accepted by every reader and writer of the package.
type Options struct {
	// DataSet is bound to the records that are read; may be nil.
	DataSet *models.DataSet
	Header  fixedformat.HeaderOptions
	fixedformat.Options
	// UseDailyID writes the daily id column of diversion card 1.
	UseDailyID bool
}

// WithDefaults fills unset options and copies the comment markers and the
// encoding into the header options.
func (o Options) WithDefaults() Options {
	o.Options = o.Options.WithDefaults()
	if len(o.Header.CommentMarkers) == 0 {
		o.Header.CommentMarkers = o.CommentMarkers
	}
	if len(o.Header.IgnoredMarkers) == 0 {
		o.Header.IgnoredMarkers = o.HeaderMarkers
	}
	if o.Header.Encoding == "" {
		o.Header.Encoding = o.Encoding
	}
	return o
}

// ListOptions controls list file export and import.
type ListOptions = listfile.Options

// DelayTableOptions adds the delay table controls to Options.
type DelayTableOptions struct {
	Options
	// Monthly selects monthly tables; daily otherwise.
	Monthly bool
	// Interv is the control value: negative means the value count is read
	// from each record, -100 additionally means the values are fractions.
	Interv int
	// Precision is the number of decimals written; negative means 2.
	Precision int
}

// IntervFraction marks delay tables holding fractions instead of percents.
const IntervFraction = -100

func (o DelayTableOptions) units() string {
	if o.Interv == IntervFraction {
		return models.UnitsFraction
	}
	return models.UnitsPercent
}

func (o DelayTableOptions) precision() int {
	if o.Precision < 0 {
		return 2
	}
	return o.Precision
}
