package table

// Binder maps rows of a header-driven region to records of type T.
type Binder[T any] interface {
	// DefineHeaders is called once per read, before any row is bound.
	DefineHeaders(headers []string)
	// CreateInstance builds a record from row. It returns false when the row is
	// blank or misses a required field; malformed optional fields are not an error.
	// rowNumber is the 1-based data row within the region, header excluded.
	CreateInstance(row Row, rowNumber int) (T, bool)
}

// BinderFunc adapts a function into a Binder that ignores headers.
type BinderFunc[T any] func(row Row, rowNumber int) (T, bool)

// DefineHeaders implements Binder.
func (f BinderFunc[T]) DefineHeaders([]string) {}

// CreateInstance implements Binder.
func (f BinderFunc[T]) CreateInstance(row Row, rowNumber int) (T, bool) {
	return f(row, rowNumber)
}
