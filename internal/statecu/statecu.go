// Package statecu reads and writes StateCU input files: delay table
// assignments (.dla) and climate stations (.cli).
package statecu

import (
	"github.com/iudanet/statemod/internal/statemod"
)

// Options is shared with the StateMod codecs.
type Options = statemod.Options

// ListOptions controls list file export and import.
type ListOptions = statemod.ListOptions
