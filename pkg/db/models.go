package db

import "time"

// SourceFile is one input file and its resume checkpoint.
type SourceFile struct {
	ID               int64
	Name             string
	Kind             string
	LastProcessedRow int
	AddedAt          time.Time
}

// RunCounts are the totals of one ingest run.
type RunCounts struct {
	Rows             int
	Decoded          int
	Rejected         int
	OptionalFailures int
	Skipped          int
}

// Run is one pass of the ingester over a source file.
type Run struct {
	ID           string
	SourceFileID int64
	StartedAt    time.Time
	FinishedAt   *time.Time
	Counts       RunCounts
	Error        string
}

// Rejection records a row that could not be stored. FieldIndex is -1 for
// rejections not tied to a column.
type Rejection struct {
	RunID      string
	RowIndex   int
	Reason     string
	FieldIndex int
	FieldName  string
	Message    string
}
