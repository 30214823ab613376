package domain

import "math"

const (
	// FeaturedListingLimit is the number of listings shown on the featured view.
	FeaturedListingLimit = 6

	// DefaultPageSize is used when a caller asks for a non-positive page size.
	DefaultPageSize = 10

	// MaxPageSize caps the number of listings returned by one search call.
	MaxPageSize = 100

	// MaxPageNumber keeps (number-1)*size within int for every allowed size.
	MaxPageNumber = math.MaxInt / MaxPageSize
)

// Page is a 1-based page request. Build it with NewPage so the bounds hold.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps a caller supplied page number and size:
// numbers below 1 become 1 and numbers above MaxPageNumber become
// MaxPageNumber. Sizes below 1 become DefaultPageSize and sizes above
// MaxPageSize become MaxPageSize.
func NewPage(number, size int) Page {
	switch {
	case number < 1:
		number = 1
	case number > MaxPageNumber:
		number = MaxPageNumber
	}
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset is the number of records skipped before this page.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	// Saturate for pages built without NewPage.
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}
