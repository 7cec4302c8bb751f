package persistence

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/thermalkit/isp2go/internal/cooling"
	"github.com/thermalkit/isp2go/internal/throttle"
	"github.com/thermalkit/isp2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketJournal = "journal"
)

// Persistence stores the throttling event journal. The journal is
// observability only, cooling device state never persists across restarts.
type Persistence interface {
	Init() error

	AppendEvent(event cooling.Event) (err error)
	LoadJournal(limit int) ([]cooling.Event, error)
	DeleteJournal() (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AppendEvent appends a throttling event to the journal.
func (p persistence) AppendEvent(event cooling.Event) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketJournal))
		if err != nil {
			return err
		}

		sequence, err := b.NextSequence()
		if err != nil {
			return err
		}

		// big endian sequence keys keep the journal in append order
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, sequence)

		return b.Put(key, data)
	})
}

// LoadJournal returns the most recent journal entries in chronological order,
// at most limit entries. A limit <= 0 loads the whole journal.
func (p persistence) LoadJournal(limit int) ([]cooling.Event, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var events []cooling.Event
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketJournal))
		if b == nil {
			// no journal yet
			return nil
		}

		cursor := b.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			if limit > 0 && len(events) >= limit {
				break
			}

			var event cooling.Event
			if err := json.Unmarshal(v, &event); err != nil {
				ui.Warning("Unable to unmarshal journal entry: %v", err)
				continue
			}
			events = append(events, event)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// the cursor walked backwards
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	return events, nil
}

func (p persistence) DeleteJournal() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketJournal))
		if b == nil {
			// no journal yet
			return nil
		}

		return tx.DeleteBucket([]byte(BucketJournal))
	})
}

// NewJournalListener returns a hub listener that appends every throttling
// event to the journal. Write errors are logged, never raised through the
// broadcast path.
func NewJournalListener(p Persistence) cooling.Listener {
	return func(event cooling.Event) {
		if err := p.AppendEvent(event); err != nil {
			ui.Warning("Unable to journal throttling event: %v", err)
		}
	}
}

// ExportTableSnapshot writes the table snapshot to the given path as JSON.
// The write is atomic, a partially written snapshot is never observable.
func ExportTableSnapshot(path string, table *throttle.Table) error {
	snapshot, err := table.Snapshot()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}
