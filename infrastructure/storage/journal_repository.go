package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"radio-lab/contract"
	"radio-lab/domain"
	"radio-lab/errors"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ contract.IJournal = (*JournalRepository)(nil)

const (
	journalPrefix = "journal:"
	fieldText     = "text"
	fieldStation  = "station"
	fieldID       = "_id"

	defaultSearchLimit = 10
)

// JournalRepository keeps every exchanged message of a station.
// Messages live in badger, their text is indexed in bluge for full-text search.
type JournalRepository struct {
	db    *badger.DB
	index *bluge.Writer
	log   *slog.Logger
	limit int
}

func NewJournalRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger, limit int) *JournalRepository {
	return &JournalRepository{db: db, index: index, log: log, limit: limit}
}

// Open opens the journal stores under path, or in memory when path is empty.
func Open(path string) (*badger.DB, *bluge.Writer, error) {
	options := badger.DefaultOptions(filepath.Join(path, "badger")).WithLogger(nil)
	blugeCfg := bluge.DefaultConfig(filepath.Join(path, "bluge"))
	if path == "" {
		options = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
		blugeCfg = bluge.InMemoryOnlyConfig()
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open badger: %w", err)
	}
	writer, err := bluge.OpenWriter(blugeCfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return db, writer, nil
}

// Store persists a message in BadgerDB and indexes its text.
// The key is formatted as "journal:{station}:{timestamp_sortable}:{uuid}" so a
// prefix scan returns a station's messages in chronological order.
func (r *JournalRepository) Store(message domain.Message) error {
	key := Key(message)
	value, err := fromMessage(message)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}

	doc := bluge.NewDocument(key).
		AddField(bluge.NewTextField(fieldText, message.Text).StoreValue()).
		AddField(bluge.NewKeywordField(fieldStation, message.Station))
	if err = r.index.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	r.log.Debug("Message journaled", "key", key)
	return nil
}

// List returns the latest messages of a station, newest first.
// A limit <= 0 falls back to the repository limit, itself unbounded when <= 0.
func (r *JournalRepository) List(station string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = r.limit
	}
	var messages []domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("%s%s:", journalPrefix, station))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible timestamp, then walk backwards.
		seekKey := append(prefix, []byte("99999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d message reached", limit))
				break
			}
			message, err := readMessage(it.Item())
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	return messages, nil
}

// Search runs a full-text query over the journaled texts of every station.
func (r *JournalRepository) Search(ctx context.Context, query string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	reader, err := r.index.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	defer func() { _ = reader.Close() }()

	request := bluge.NewTopNSearch(limit, bluge.NewMatchQuery(query).SetField(fieldText))
	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}

	var keys []string
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == fieldID {
				keys = append(keys, string(value))
			}
			return true
		})
		if err != nil {
			break
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	return r.fetch(keys)
}

func (r *JournalRepository) fetch(keys []string) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				r.log.Debug("Indexed message missing from store", "key", key)
				continue
			}
			if err != nil {
				return err
			}
			message, err := readMessage(item)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	return messages, nil
}

// Key is the badger key of a journaled message.
// The timestamp has its sign bit flipped so that dates before 1970 still sort
// before later ones once padded to 20 digits.
func Key(message domain.Message) string {
	return fmt.Sprintf("%s%s:%020d:%s",
		journalPrefix,
		message.Station,
		uint64(message.At.UnixNano())^(1<<63),
		message.ID,
	)
}

func readMessage(item *badger.Item) (domain.Message, error) {
	var message domain.Message
	err := item.Value(func(value []byte) error {
		var err error
		message, err = Decode(value)
		return err
	})
	return message, err
}

// Decode turns a stored value back into a message.
func Decode(value []byte) (domain.Message, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return domain.Message{}, err
	}
	return toMessage(&s)
}

// Timestamps are kept as RFC3339 strings: structpb numbers are float64 and
// cannot hold nanoseconds since epoch.
func fromMessage(message domain.Message) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":        message.ID.String(),
		"station":   message.Station,
		"peer":      message.Peer,
		"direction": string(message.Direction),
		"text":      message.Text,
		"morse":     message.Morse,
		"decoded":   message.Decoded,
		"at":        message.At.UTC().Format(time.RFC3339Nano),
	})
}

func toMessage(s *structpb.Struct) (domain.Message, error) {
	fields := lo.MapValues(s.GetFields(), func(v *structpb.Value, _ string) string {
		return v.GetStringValue()
	})
	id, err := uuid.Parse(fields["id"])
	if err != nil {
		return domain.Message{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, fields["at"])
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:        id,
		Station:   fields["station"],
		Peer:      fields["peer"],
		Direction: domain.Direction(fields["direction"]),
		Text:      fields["text"],
		Morse:     fields["morse"],
		Decoded:   fields["decoded"],
		At:        at,
	}, nil
}
