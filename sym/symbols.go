// Package sym defines canonical symbols for strata pipeline stages and
// system markers. These symbols are stable across CLI output, logs, and
// documentation.
package sym

// Pipeline stage symbols.
const (
	Section = "▤" // section — layered structure sampling
	Query   = "✛" // query — spatial query point generation
	Solve   = "≋" // solve — response evaluation
	Frame   = "▦" // frame — denormalized dataset assembly
	Split   = "⋔" // split — train/val/test partitioning
	Graph   = "⋈" // graph — per-section graph construction
)

// System infrastructure symbols.
const (
	DB  = "⛁" // database operations
	Run = "➤" // pipeline run dispatch
)
