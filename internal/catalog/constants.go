package catalog

// Defaults applied when the catalog omits a field
const (
	DefaultSlots = 3
	DefaultWage  = 0

	// SchemaVersion is the catalog format this loader understands
	SchemaVersion = "1.0"

	schemaURL = "catalog.schema.json"
)
