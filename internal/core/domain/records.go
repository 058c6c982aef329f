package domain

// FileRecord is one row of the file table joined with its version row.
type FileRecord struct {
	ID                int64
	Path              string
	VersionID         int64
	TypeName          string
	FormatVersion     string
	IsLeaf            bool
	InputOrderMatters bool
	LastModified      int64
	Size              int64
	ContentHash       string
	Signature         string
}

// GraphConfigs rebuilds the node flags stored on the row.
func (r *FileRecord) GraphConfigs() GraphConfig {
	var cfg GraphConfig
	if r.IsLeaf {
		cfg |= GraphConfigLeafInput
	}
	if r.InputOrderMatters {
		cfg |= GraphConfigInputOrderMatters
	}
	return cfg
}

// GraphEdge is one row of the graph table.
type GraphEdge struct {
	OutFileID      int64
	InFileID       int64
	InLastModified int64
	OrderIndex     int
	CanBeMissing   bool
	Existed        bool
}

// GraphRow is a stored edge together with the row of its input file.
type GraphRow struct {
	Edge  GraphEdge
	Input FileRecord
}
