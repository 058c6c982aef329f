package depgraph

import (
	"context"
	"fmt"

	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// wasModified reports whether n changed since its row was written, ignoring its inputs.
func (e *Engine) wasModified(
	ctx context.Context,
	q ports.GraphQueries,
	n *domain.DependencyInfo,
) (bool, ports.StalenessReason, error) {
	if !n.IsPersisted() {
		return true, ports.ReasonNeverBuilt, nil
	}
	current, err := e.currentVersionID(ctx, q, n.TypeName)
	if err != nil {
		return false, "", err
	}
	if n.VersionRowID != current {
		return true, ports.ReasonModified, nil
	}

	switch n.Kind {
	case domain.KindData:
		return e.hasher.HashBytes(n.Data) != n.ContentHash, ports.ReasonModified, nil
	default:
		modified, err := e.wasFileModifiedOnDisk(n)
		return modified, ports.ReasonModified, err
	}
}

// wasFileModifiedOnDisk checks existence, then size, and hashes the file only when the size
// matches but the modification time does not.
func (e *Engine) wasFileModifiedOnDisk(n *domain.DependencyInfo) (bool, error) {
	st, err := e.fs.Stat(n.Path)
	if err != nil {
		return false, err
	}
	if !st.Exists || st.Size != n.Size {
		return true, nil
	}
	if st.ModTime == n.LastModified {
		return false, nil
	}
	hash, err := e.hasher.HashFile(n.Path)
	if err != nil {
		return false, err
	}
	return hash != n.ContentHash, nil
}

func (e *Engine) isHashValid(n *domain.DependencyInfo) (bool, error) {
	if n.Kind == domain.KindData {
		return n.HashValid && n.ContentHash != "", nil
	}
	if n.ContentHash == "" {
		return false, nil
	}
	modified, err := e.wasFileModifiedOnDisk(n)
	return !modified, err
}

// generateHash recomputes the content hash of n and marks it valid.
func (e *Engine) generateHash(n *domain.DependencyInfo) error {
	if n.Kind == domain.KindData {
		n.ContentHash = e.hasher.HashBytes(n.Data)
		n.Size = int64(len(n.Data))
		n.HashValid = true
		return nil
	}

	st, err := e.fs.Stat(n.Path)
	if err != nil {
		return err
	}
	if !st.Exists {
		return zerr.With(domain.ErrHashFailed, "path", n.Path)
	}
	hash, err := e.hasher.HashFile(n.Path)
	if err != nil {
		return err
	}
	n.Size = st.Size
	n.LastModified = st.ModTime
	n.ContentHash = hash
	n.HashValid = true
	return nil
}

// clearHash resets the content fields of a node that no longer exists.
func clearHash(n *domain.DependencyInfo) {
	n.Size = 0
	n.LastModified = 0
	n.ContentHash = ""
	n.HashValid = false
}

func (e *Engine) exists(n *domain.DependencyInfo) (bool, error) {
	if n.Kind == domain.KindData {
		return true, nil
	}
	st, err := e.fs.Stat(n.Path)
	if err != nil {
		return false, err
	}
	return st.Exists, nil
}

// appendToSignature feeds the content hash of n, or of its signature path, into d.
// It reports whether the node was skipped because it does not exist.
func (e *Engine) appendToSignature(d ports.Digest, n *domain.DependencyInfo, trace *[]string) (bool, error) {
	if n.SignaturePath != "" {
		st, err := e.fs.Stat(n.SignaturePath)
		if err != nil {
			return false, err
		}
		if !st.Exists {
			return true, nil
		}
		hash, err := e.hasher.HashFile(n.SignaturePath)
		if err != nil {
			return false, err
		}
		writeSignaturePart(d, hash)
		*trace = append(*trace, fmt.Sprintf("%s %s", hash, n.SignaturePath))
		return false, nil
	}

	ok, err := e.exists(n)
	if err != nil || !ok {
		return !ok, err
	}
	valid, err := e.isHashValid(n)
	if err != nil {
		return false, err
	}
	if !valid {
		if err := e.generateHash(n); err != nil {
			return false, err
		}
	}
	writeSignaturePart(d, n.ContentHash)
	*trace = append(*trace, fmt.Sprintf("%s %s", n.ContentHash, n.Path))
	return false, nil
}

func writeSignaturePart(d ports.Digest, part string) {
	// Digest writes never fail.
	_, _ = d.Write([]byte(part))
	_, _ = d.Write([]byte{0})
}
