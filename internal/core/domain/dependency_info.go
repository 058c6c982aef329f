// Package domain contains the core models of the incremental build dependency graph.
package domain

import "bytes"

const (
	// InvalidRowID marks a node or version that has no row in the graph store yet.
	InvalidRowID int64 = -1

	// MaxFileGraphDepth bounds the depth of a graph walk. Exceeding it is a hard failure.
	MaxFileGraphDepth = 25
)

// NodeKind selects how a node is stored and hashed.
type NodeKind uint8

const (
	// KindFile is a node backed by a file on disk.
	KindFile NodeKind = iota
	// KindData is a node backed by an in-memory buffer. It always exists.
	KindData
)

// String returns a readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// GraphConfig holds per-node graph flags.
type GraphConfig uint8

const (
	// GraphConfigLeafInput marks a terminal node. Its freshness only depends on its own content.
	GraphConfigLeafInput GraphConfig = 1 << iota
	// GraphConfigInputOrderMatters makes the order of the node's inputs part of its identity.
	GraphConfigInputOrderMatters
)

// Has reports whether all bits of flag are set.
func (c GraphConfig) Has(flag GraphConfig) bool {
	return c&flag == flag
}

// EdgeInfo is the metadata of one (input, output) pair, stored on the input and keyed by output path.
type EdgeInfo struct {
	// LastModifiedAtLastBuild is the input's modification time recorded when the output was last committed.
	LastModifiedAtLastBuild int64
	// IsOptional allows the input to be absent.
	IsOptional bool
	// ExistedAtLastBuild records whether the input existed when the output was last committed.
	ExistedAtLastBuild bool
}

// DependencyInfo describes one node of the graph: a file or an in-memory blob.
type DependencyInfo struct {
	Path          string
	TypeName      string
	FormatVersion string
	Kind          NodeKind

	// Data is the content of a KindData node.
	Data []byte
	// SignaturePath, when set, is hashed into signatures instead of the node's own content.
	SignaturePath string

	Size         int64
	LastModified int64

	ContentHash    string
	HashValid      bool
	Signature      string
	SignatureTrace []string

	GraphConfigs GraphConfig
	Dependencies *OrderedSet
	GraphInfo    map[string]EdgeInfo

	IsUpToDate       bool
	IsUpToDateCached bool
	WasGraphSelected bool

	RowID        int64
	VersionRowID int64
}

// NewFileInfo creates a node backed by the file at path.
func NewFileInfo(path, typeName string, cfg GraphConfig) *DependencyInfo {
	return newInfo(path, typeName, KindFile, cfg)
}

// NewDataInfo creates a node backed by data. The path only serves as its identity.
func NewDataInfo(path, typeName string, data []byte, cfg GraphConfig) *DependencyInfo {
	info := newInfo(path, typeName, KindData, cfg)
	info.Data = data
	return info
}

func newInfo(path, typeName string, kind NodeKind, cfg GraphConfig) *DependencyInfo {
	return &DependencyInfo{
		Path:         path,
		TypeName:     typeName,
		Kind:         kind,
		GraphConfigs: cfg,
		Dependencies: NewOrderedSet(),
		GraphInfo:    make(map[string]EdgeInfo),
		RowID:        InvalidRowID,
		VersionRowID: InvalidRowID,
	}
}

// EnsureInit fills the collections and row ids of a zero-value DependencyInfo.
func (d *DependencyInfo) EnsureInit() {
	if d.Dependencies == nil {
		d.Dependencies = NewOrderedSet()
	}
	if d.GraphInfo == nil {
		d.GraphInfo = make(map[string]EdgeInfo)
	}
	if d.RowID == 0 {
		d.RowID = InvalidRowID
	}
	if d.VersionRowID == 0 {
		d.VersionRowID = InvalidRowID
	}
}

// IsLeaf reports whether the node is a terminal input.
func (d *DependencyInfo) IsLeaf() bool {
	return d.GraphConfigs.Has(GraphConfigLeafInput)
}

// OrderMatters reports whether the order of the node's inputs is significant.
func (d *DependencyInfo) OrderMatters() bool {
	return d.GraphConfigs.Has(GraphConfigInputOrderMatters)
}

// IsPersisted reports whether the node has a row in the graph store.
func (d *DependencyInfo) IsPersisted() bool {
	return d.RowID != InvalidRowID
}

// Edge returns the metadata of the edge from d to the output at out.
func (d *DependencyInfo) Edge(out string) (EdgeInfo, bool) {
	e, ok := d.GraphInfo[out]
	return e, ok
}

// SetEdge stores the metadata of the edge from d to the output at out.
func (d *DependencyInfo) SetEdge(out string, e EdgeInfo) {
	if d.GraphInfo == nil {
		d.GraphInfo = make(map[string]EdgeInfo)
	}
	d.GraphInfo[out] = e
}

// ResetSession drops every transient flag computed during a graph walk.
func (d *DependencyInfo) ResetSession() {
	d.IsUpToDate = false
	d.IsUpToDateCached = false
}

// IsEqual compares identity fields, hashes and dependency sets.
// Hashes are only compared when both sides carry one.
func (d *DependencyInfo) IsEqual(other *DependencyInfo) bool {
	if other == nil {
		return false
	}
	if d.Path != other.Path ||
		d.TypeName != other.TypeName ||
		d.Kind != other.Kind ||
		d.GraphConfigs != other.GraphConfigs {
		return false
	}
	if d.Kind == KindData && !bytes.Equal(d.Data, other.Data) {
		return false
	}
	if d.ContentHash != "" && other.ContentHash != "" && d.ContentHash != other.ContentHash {
		return false
	}
	if d.Signature != "" && other.Signature != "" && d.Signature != other.Signature {
		return false
	}
	return d.Dependencies.Equal(other.Dependencies)
}
