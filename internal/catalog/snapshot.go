package catalog

import (
	"compress/flate"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"route_planner/internal/log"
	"route_planner/internal/models"
)

type snapshot struct {
	Airports []models.Airport `msgpack:"airports"`
	Planes   []models.Plane   `msgpack:"planes"`
}

// StoreSnapshot writes the parsed catalog as flate-compressed msgpack so
// later startups can skip CSV and JSON parsing.
func (c *Catalog) StoreSnapshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := flate.NewWriter(f, flate.BestSpeed)
	if err != nil {
		return err
	}

	if err := msgpack.NewEncoder(fw).Encode(snapshot{Airports: c.airports, Planes: c.planes}); err != nil {
		return err
	}
	return fw.Close()
}

// LoadSnapshot reads a catalog written by StoreSnapshot and returns it
// along with the snapshot's modification time.
func LoadSnapshot(path string) (*Catalog, time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, err
	}

	fr := flate.NewReader(f)
	defer fr.Close()

	var s snapshot
	if err := msgpack.NewDecoder(fr).Decode(&s); err != nil {
		return nil, time.Time{}, err
	}
	if len(s.Airports) == 0 {
		return nil, time.Time{}, ErrNoAirports
	}
	if len(s.Planes) == 0 {
		return nil, time.Time{}, ErrNoPlanes
	}
	return New(s.Airports, s.Planes), fi.ModTime(), nil
}

// Load builds the catalog from the source files. If snapshotPath is set and
// the snapshot there is newer than both sources, it is used instead; a
// fresh snapshot is written after parsing the sources.
func Load(airportsPath, planesPath, snapshotPath string, lg *log.Logger) (*Catalog, error) {
	if snapshotPath != "" {
		if c, mod, err := LoadSnapshot(snapshotPath); err == nil && newerThan(mod, airportsPath, planesPath) {
			lg.Infof("%s: loaded %d airports, %d planes from snapshot", snapshotPath, len(c.airports), len(c.planes))
			return c, nil
		} else if err != nil && !os.IsNotExist(err) {
			lg.Warnf("%s: ignoring snapshot: %v", snapshotPath, err)
		}
	}

	airports, err := LoadAirportsCSV(airportsPath)
	if err != nil {
		return nil, err
	}
	planes, err := LoadPlanesJSON(planesPath)
	if err != nil {
		return nil, err
	}
	c := New(airports, planes)
	lg.Infof("loaded %d airports, %d planes", len(airports), len(planes))

	if snapshotPath != "" {
		if err := c.StoreSnapshot(snapshotPath); err != nil {
			lg.Warnf("%s: %v", snapshotPath, err)
		}
	}
	return c, nil
}

func newerThan(t time.Time, paths ...string) bool {
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil || fi.ModTime().After(t) {
			return false
		}
	}
	return true
}
