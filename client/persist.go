package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/youtube/vitess/go/ioutil2"

	"github.com/lerwys/libbsmp/catalog"
)

// Snapshot is a JSON-serializable dump of a populated catalog, for
// offline inspection only: nothing in Init or the command surface
// ever reads one back, so it cannot violate the "catalog populated
// exactly once by Init" invariant (spec §3).
type Snapshot struct {
	Version Version
	Vars    []catalog.Variable
	Groups  []catalog.Group
	Curves  []catalog.Curve
	Funcs   []catalog.Function
}

// Snapshot captures the client's current catalog and version.
func (c *Client) Snapshot() Snapshot {
	return Snapshot{
		Version: c.version,
		Vars:    c.catalog.Vars(),
		Groups:  c.catalog.Groups(),
		Curves:  c.catalog.Curves(),
		Funcs:   c.catalog.Funcs(),
	}
}

// SaveCatalogSnapshot writes the client's current catalog to path,
// atomically, mirroring common/version/latest_version.go's
// ioutil2.WriteFileAtomic cache-to-disk pattern.
func (c *Client) SaveCatalogSnapshot(path string) error {
	data, err := json.MarshalIndent(c.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("bsmp: marshal snapshot: %w", err)
	}
	if err := ioutil2.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("bsmp: write snapshot: %w", err)
	}
	return nil
}

// LoadCatalogSnapshot reads back a snapshot written by
// SaveCatalogSnapshot, for offline inspection (e.g. diffing against a
// live catalog without reconnecting).
func LoadCatalogSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("bsmp: unmarshal snapshot: %w", err)
	}
	return snap, nil
}
