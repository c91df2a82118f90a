package pipeline

import (
	"github.com/strataml/strata/errors"
)

// Mode selects how the dataset is obtained: generated fresh or loaded from
// the artifact database.
type Mode int

const (
	Generate Mode = iota
	Load
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Generate:
		return "generate"
	case Load:
		return "load"
	default:
		return "unknown"
	}
}

// ParseMode resolves a mode name. The set is closed: anything else is a
// configuration error.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "generate":
		return Generate, nil
	case "load":
		return Load, nil
	default:
		return 0, errors.NewConfigurationError("unknown mode %q, want generate or load", s)
	}
}

// Phase selects the consumer stage the dataset is prepared for.
type Phase int

const (
	Train Phase = iota
	Eval
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Train:
		return "train"
	case Eval:
		return "eval"
	default:
		return "unknown"
	}
}

// ParsePhase resolves a phase name.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "train":
		return Train, nil
	case "eval":
		return Eval, nil
	default:
		return 0, errors.NewConfigurationError("unknown phase %q, want train or eval", s)
	}
}

// Model selects the downstream model family the dataset is shaped for.
type Model int

const (
	GNN Model = iota
	PNN
	FNN
)

// String returns the model name.
func (m Model) String() string {
	switch m {
	case GNN:
		return "gnn"
	case PNN:
		return "pnn"
	case FNN:
		return "fnn"
	default:
		return "unknown"
	}
}

// ParseModel resolves a model name.
func ParseModel(s string) (Model, error) {
	switch s {
	case "gnn":
		return GNN, nil
	case "pnn":
		return PNN, nil
	case "fnn":
		return FNN, nil
	default:
		return 0, errors.NewConfigurationError("unknown model %q, want gnn, pnn, or fnn", s)
	}
}
