package destination

// MergeResult reports what a merge actually did.
type MergeResult struct {
	// Skipped is true when the batch was empty and no statements were issued.
	Skipped bool
	// RowsStaged is the number of rows written to the staging table.
	RowsStaged int
	// StagingTable is the fully qualified name of the staging table that was used.
	StagingTable string
}
