package repositories

import (
	"bucket-chan/domain"
	"bucket-chan/internal"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	MapPrefix   = "map:"
	mapSequence = "seq:map"
)

// MapRepository stores map suggestions in BadgerDB.
// Keys are "map:{sequence_padded}" so a prefix scan returns them in insertion order.
type MapRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

func NewMapRepository(db *badger.DB, log *slog.Logger) (*MapRepository, error) {
	seq, err := db.GetSequence([]byte(mapSequence), 64)
	if err != nil {
		return nil, fmt.Errorf("map sequence: %w", err)
	}
	return &MapRepository{db: db, seq: seq, log: log}, nil
}

// OpenInMemory opens a Badger instance that lives as long as the process.
// Map suggestions are game-day scratch data and are not kept across restarts.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR))
}

func (m *MapRepository) Add(entry domain.MapEntry) error {
	next, err := m.seq.Next()
	if err != nil {
		return err
	}
	bytes, err := encodeMapEntry(entry)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%019d", MapPrefix, next)
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List returns every stored entry, oldest first.
func (m *MapRepository) List() ([]domain.MapEntry, error) {
	var entries []domain.MapEntry
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(MapPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				entry, err := decodeMapEntry(value)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Debug("Listed maps", "count", len(entries))
	return entries, nil
}

// Close releases the sequence lease. The database itself belongs to the caller.
func (m *MapRepository) Close() error {
	return m.seq.Release()
}

// encodeMapEntry replaces invalid UTF-8, which protobuf strings cannot carry.
func encodeMapEntry(entry domain.MapEntry) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"id":       entry.ID.String(),
		"name":     strings.ToValidUTF8(entry.Name, string(utf8.RuneError)),
		"url":      strings.ToValidUTF8(entry.URL, string(utf8.RuneError)),
		"added_at": entry.AddedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func decodeMapEntry(value []byte) (domain.MapEntry, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return domain.MapEntry{}, err
	}
	fields := s.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return domain.MapEntry{}, err
	}
	addedAt, err := time.Parse(time.RFC3339Nano, fields["added_at"].GetStringValue())
	if err != nil {
		return domain.MapEntry{}, err
	}
	return domain.MapEntry{
		ID:      id,
		Name:    fields["name"].GetStringValue(),
		URL:     fields["url"].GetStringValue(),
		AddedAt: addedAt,
	}, nil
}

// MapRow renders a stored entry for the debug inspector.
func MapRow(key string, val []byte) internal.InspectRow {
	entry, err := decodeMapEntry(val)
	if err != nil {
		row := internal.DefaultMapper(key, val)
		row.Detail = "undecodable: " + err.Error()
		return row
	}
	return internal.InspectRow{
		Key:    key,
		Name:   entry.Name,
		Detail: entry.URL,
		Time:   entry.AddedAt.Format("2006-01-02 15:04:05"),
	}
}
