package sequencer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const snapshotStamp = "2006-01-02_15-04-05"

// SnapshotInfo describes a saved snapshot (for listing)
type SnapshotInfo struct {
	Filename  string
	Name      string // parsed from filename (empty if unnamed)
	Timestamp time.Time
}

// Snapshots keeps named, timestamped copies of the pattern in a directory
type Snapshots struct {
	Dir string

	now func() time.Time
}

// NewSnapshots returns a snapshot store in dir
func NewSnapshots(dir string) *Snapshots {
	return &Snapshots{Dir: dir, now: time.Now}
}

// List returns the snapshots, newest first
func (s *Snapshots) List() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotInfo{}, nil
		}
		return nil, err
	}

	var infos []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}

		// 2024-01-15_14-30-00.json or 2024-01-15_14-30-00_name.json
		base := strings.TrimSuffix(name, ".json")
		if len(base) < len(snapshotStamp) {
			continue
		}
		ts, err := time.Parse(snapshotStamp, base[:len(snapshotStamp)])
		if err != nil {
			continue
		}

		label := ""
		if len(base) > len(snapshotStamp)+1 && base[len(snapshotStamp)] == '_' {
			label = base[len(snapshotStamp)+1:]
		}

		infos = append(infos, SnapshotInfo{
			Filename:  name,
			Name:      label,
			Timestamp: ts,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Timestamp.Equal(infos[j].Timestamp) {
			return infos[i].Filename > infos[j].Filename
		}
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}

// Save writes r as a new snapshot and returns its file name
func (s *Snapshots) Save(name string, r Record) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}

	filename := s.now().Format(snapshotStamp)
	if safe := sanitizeFilename(name); safe != "" {
		filename += "_" + safe
	}
	filename += ".json"

	if err := os.WriteFile(filepath.Join(s.Dir, filename), data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// Load reads a snapshot (the newest if filename is empty)
func (s *Snapshots) Load(filename string) ([]byte, error) {
	if filename == "" {
		infos, err := s.List()
		if err != nil {
			return nil, err
		}
		if len(infos) == 0 {
			return nil, fmt.Errorf("no snapshots in %s", s.Dir)
		}
		filename = infos[0].Filename
	}
	return os.ReadFile(filepath.Join(s.Dir, filepath.Base(filename)))
}

// Delete removes a snapshot
func (s *Snapshots) Delete(filename string) error {
	return os.Remove(filepath.Join(s.Dir, filepath.Base(filename)))
}

// Rename changes the name part of a snapshot, keeping its timestamp
func (s *Snapshots) Rename(oldFilename, newName string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(oldFilename), ".json")
	if len(base) < len(snapshotStamp) {
		return "", fmt.Errorf("invalid snapshot filename %q", oldFilename)
	}

	filename := base[:len(snapshotStamp)]
	if safe := sanitizeFilename(newName); safe != "" {
		filename += "_" + safe
	}
	filename += ".json"

	err := os.Rename(filepath.Join(s.Dir, filepath.Base(oldFilename)), filepath.Join(s.Dir, filename))
	if err != nil {
		return "", err
	}
	return filename, nil
}

// sanitizeFilename removes/replaces characters that are problematic in filenames
func sanitizeFilename(name string) string {
	r := strings.NewReplacer(
		" ", "-", "/", "-", "\\", "-", ":", "-",
		"*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
	)
	return r.Replace(strings.TrimSpace(name))
}
