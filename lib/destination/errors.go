package destination

import "fmt"

// MissingKeyError is returned when a submitted row has no usable value for a key column.
// Key columns drive the merge join, so we reject the whole batch before issuing any SQL.
type MissingKeyError struct {
	// Row is the zero indexed position of the offending row in the batch.
	Row    int
	Column string
}

func (m MissingKeyError) Error() string {
	return fmt.Sprintf("row %d has no value for key column %q", m.Row, m.Column)
}

// UnknownColumnError is returned when a column shows up where the plan or the
// target table has no home for it.
type UnknownColumnError struct {
	Column string
}

func (u UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", u.Column)
}
