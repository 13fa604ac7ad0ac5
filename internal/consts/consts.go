package consts

// Record tokens of the punch (direct matrix input) format.
const (
	SPOINT       = "SPOINT" // Scalar point declaration
	DMIG         = "DMIG"   // Matrix header / block terminator
	DMIGStar     = "DMIG*"  // Column header, large field
	Continuation = "*"      // Matrix entry continuation
)

// Matrix identifiers written by the solver.
const (
	MassID      = "MAAX" // Mass matrix, a-set
	StiffnessID = "KAAX" // Stiffness matrix, a-set
)

// Local DOF written on headers of scalar points.
const ScalarComponent = "0"

// Line buffer limit for punch scanners.
const MaxLineSize = 10 * 1024 * 1024

// Largest system matrix dimension accepted; dense storage holds n*n values.
const MaxDimension = 1 << 16
