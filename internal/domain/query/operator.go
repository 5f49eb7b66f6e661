package query

// Operator is a comparison operator of a leaf expression
type Operator int

const (
	// Equals matches values equal to the operand
	Equals Operator = iota
	// NotEquals matches values different from the operand
	NotEquals
	// LessThan matches values strictly below the operand
	LessThan
	// LessOrEqual matches values below or equal to the operand
	LessOrEqual
	// GreaterThan matches values strictly above the operand
	GreaterThan
	// GreaterOrEqual matches values above or equal to the operand
	GreaterOrEqual
	// Like matches values against a pattern
	Like
	// NotLike matches values not matching a pattern
	NotLike
	// In matches values contained in the operand list
	In
	// NotIn matches values absent from the operand list
	NotIn
	// Between matches values inside an inclusive [low, high] range
	Between
	// IsNull matches unset values
	IsNull
	// IsNotNull matches set values
	IsNotNull
)

// Arity is the number of operand values an operator takes
type Arity int

const (
	// ArityOne requires exactly one value
	ArityOne Arity = iota
	// ArityMany requires one or more values
	ArityMany
	// ArityPair requires exactly two values
	ArityPair
	// ArityNone ignores the operand
	ArityNone
)

var operatorNames = map[Operator]string{
	Equals:         "equals",
	NotEquals:      "not-equals",
	LessThan:       "less-than",
	LessOrEqual:    "less-or-equal",
	GreaterThan:    "greater-than",
	GreaterOrEqual: "greater-or-equal",
	Like:           "like",
	NotLike:        "not-like",
	In:             "in",
	NotIn:          "not-in",
	Between:        "between",
	IsNull:         "is-null",
	IsNotNull:      "is-not-null",
}

var operatorArity = map[Operator]Arity{
	Equals:         ArityOne,
	NotEquals:      ArityOne,
	LessThan:       ArityOne,
	LessOrEqual:    ArityOne,
	GreaterThan:    ArityOne,
	GreaterOrEqual: ArityOne,
	Like:           ArityOne,
	NotLike:        ArityOne,
	In:             ArityMany,
	NotIn:          ArityMany,
	Between:        ArityPair,
	IsNull:         ArityNone,
	IsNotNull:      ArityNone,
}

// String returns the operator name
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the operator is a declared operator
func (o Operator) IsValid() bool {
	_, ok := operatorNames[o]
	return ok
}

// Arity returns how many operand values the operator takes
func (o Operator) Arity() Arity {
	return operatorArity[o]
}

// ParseOperator resolves an operator by its name
func ParseOperator(name string) (Operator, error) {
	for op, n := range operatorNames {
		if n == name {
			return op, nil
		}
	}
	return 0, &TranslationError{Err: ErrUnsupportedOperator, Detail: name}
}

// CheckArity verifies that values is an acceptable operand count for the operator
func (o Operator) CheckArity(values []Value) bool {
	switch o.Arity() {
	case ArityOne:
		return len(values) == 1
	case ArityMany:
		return len(values) >= 1
	case ArityPair:
		return len(values) == 2
	default:
		return true
	}
}
