package query

// Expression is a node of a boolean query tree.
// Implementations are *Comparison, *And and *Or; the private marker keeps
// the set closed so a type switch over the three kinds is exhaustive.
type Expression interface {
	expressionNode()
}

// Comparison is a leaf binding one field, one operator and one operand
type Comparison struct {
	Field    Field
	Operator Operator
	Value    Value
}

// And is satisfied when all of its children are satisfied
type And struct {
	Children []Expression
}

// Or is satisfied when at least one of its children is satisfied
type Or struct {
	Children []Expression
}

func (*Comparison) expressionNode() {}
func (*And) expressionNode()        {}
func (*Or) expressionNode()         {}

// Compare creates a comparison leaf
func Compare(field Field, op Operator, value Value) *Comparison {
	return &Comparison{Field: field, Operator: op, Value: value}
}

// NewAnd creates a conjunction of the given children, in order
func NewAnd(children ...Expression) *And {
	return &And{Children: children}
}

// NewOr creates a disjunction of the given children, in order
func NewOr(children ...Expression) *Or {
	return &Or{Children: children}
}

// SortDirection is the ordering of a sort key
type SortDirection string

const (
	// SortAscending orders from lowest to highest
	SortAscending SortDirection = "asc"
	// SortDescending orders from highest to lowest
	SortDescending SortDirection = "desc"
)

// Sort is a sort key of a query
type Sort struct {
	Field     string
	Direction SortDirection
}

// Page restricts a query to a window of its results
type Page struct {
	Offset int
	Limit  int
}

// Query is a filter expression plus untranslated sort/pagination metadata
type Query struct {
	// Entity is the listing the query targets (e.g. "orders")
	Entity string
	// Filter is the root expression; nil means no filter
	Filter Expression
	Sort   []Sort
	Page   *Page
}

// Apply returns the window of a result slice selected by the page.
// A nil page selects everything.
func (p *Page) Apply(total int) (start, end int) {
	if p == nil {
		return 0, total
	}
	start = p.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end = total
	if p.Limit > 0 && start+p.Limit < total {
		end = start + p.Limit
	}
	return start, end
}
