package render

// Display values
const (
	MissingValue = "<none>"
	NAValue      = "n/a"
	UnknownValue = "<unknown>"
	ZeroValue    = "0"
	Blank        = ""
)

// Column names shared by several renderers.
const (
	colAge  = "AGE"
	colName = "NAME"
)
