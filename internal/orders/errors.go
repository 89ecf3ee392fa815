package orders

import "errors"

// File-level failures abort the whole operation; row-level problems are
// collected as warnings and never abort the batch.
var (
	ErrUnsupportedFormat = errors.New("unsupported file type, expected .xlsx")
	ErrMalformedWorkbook = errors.New("file is not a valid xlsx workbook")
	ErrMissingSheet      = errors.New("workbook must contain an orders sheet and an order lines sheet")
	ErrNotFound          = errors.New("order not found")
)
