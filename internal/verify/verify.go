// Package verify reconciles the blocks directory against the registry.
package verify

import (
	"sort"
	"strings"

	"github.com/maauso/blockcut/internal/block"
)

// Report is the diff between block files on disk and registry rows.
// The registry is the source of truth; both directions are reported so the
// operator can reconcile partial runs.
type Report struct {
	// Orphans are block ids present on disk but missing from the registry.
	Orphans []string
	// Missing are block ids present in the registry but missing on disk.
	Missing []string
	// FilesOnDisk is the number of block files found in the directory.
	FilesOnDisk int
	// Registered is the number of registry rows checked.
	Registered int
}

// InSync returns true when disk and registry match exactly.
func (r Report) InSync() bool {
	return len(r.Orphans) == 0 && len(r.Missing) == 0
}

// Run diffs the file names found in the blocks directory against the
// registered blocks. Files that are not block wavs (m{n}.wav / v{n}.wav)
// are ignored; the registry workbook itself lives in the same directory.
func Run(files []string, registered []block.Block) Report {
	onDisk := make(map[string]struct{})
	for _, name := range files {
		id, ok := blockID(name)
		if !ok {
			continue
		}
		onDisk[id] = struct{}{}
	}

	inRegistry := make(map[string]struct{}, len(registered))
	for _, b := range registered {
		inRegistry[b.ID()] = struct{}{}
	}

	report := Report{
		FilesOnDisk: len(onDisk),
		Registered:  len(inRegistry),
	}
	for id := range onDisk {
		if _, ok := inRegistry[id]; !ok {
			report.Orphans = append(report.Orphans, id)
		}
	}
	for id := range inRegistry {
		if _, ok := onDisk[id]; !ok {
			report.Missing = append(report.Missing, id)
		}
	}

	sortIDs(report.Orphans)
	sortIDs(report.Missing)
	return report
}

// blockID extracts a block id from a file name like "m3.wav".
func blockID(name string) (string, bool) {
	if !strings.HasSuffix(name, ".wav") {
		return "", false
	}
	id := strings.TrimSuffix(name, ".wav")
	if _, _, err := block.ParseID(id); err != nil {
		return "", false
	}
	return id, true
}

// sortIDs orders ids by type then sequence number, so "m2" sorts before "m10".
func sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		ti, si, _ := block.ParseID(ids[i])
		tj, sj, _ := block.ParseID(ids[j])
		if ti != tj {
			return ti < tj
		}
		return si < sj
	})
}
