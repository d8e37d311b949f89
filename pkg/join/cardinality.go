package join

// Cardinality selects the shape of an attached relation: "many" always
// attaches a list (possibly empty), "one" attaches the first match or an
// explicit nil absence marker, never an empty list.
type Cardinality string

const (
	CardinalityMany Cardinality = "many"
	CardinalityOne  Cardinality = "one"
)

// Validate rejects anything but the two recognized values.
func (c Cardinality) Validate() error {
	switch c {
	case CardinalityMany, CardinalityOne:
		return nil
	default:
		return NewInvalidCardinalityError(string(c))
	}
}

// orMany maps the zero value to the default cardinality.
func (c Cardinality) orMany() Cardinality {
	if c == "" {
		return CardinalityMany
	}
	return c
}
