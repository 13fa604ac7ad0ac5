package matrix

import (
	"fmt"
	"strings"

	"github.com/edp1096/pchmat/internal/consts"
)

// Kind selects which system matrix is read from a punch file.
type Kind int

const (
	Mass Kind = iota
	Stiffness
)

// Identifier returns the matrix name the solver writes on DMIG* records.
func (k Kind) Identifier() string {
	if k == Mass {
		return consts.MassID
	}
	return consts.StiffnessID
}

func (k Kind) String() string {
	switch k {
	case Mass:
		return "mass"
	case Stiffness:
		return "stiffness"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mass", "m", "maax":
		return Mass, nil
	case "stiffness", "stif", "k", "kaax":
		return Stiffness, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}
