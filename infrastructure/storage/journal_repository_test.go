package storage

import (
	"context"
	"log/slog"
	"radio-lab/domain"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, limit int) *JournalRepository {
	t.Helper()
	db, writer, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = writer.Close()
		_ = db.Close()
	})
	return NewJournalRepository(db, writer, slog.New(slog.DiscardHandler), limit)
}

func TestJournalRepository_StoreAndList(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, 0)
	base := time.Date(1912, time.April, 15, 0, 15, 0, 0, time.UTC)

	// Given three messages of TITANIC and one of CARPATHIA
	first := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "CQD CQD", "-.-. --.- -.. /-.-. --.- -..", base)
	second := domain.NewMessage("TITANIC", "CARPATHIA", domain.RECEIVED, "COMING", "-.-. --- -- .. -. --.", base.Add(time.Minute))
	second.Decoded = "COMING"
	third := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "SOS", "... --- ...", base.Add(2*time.Minute))
	other := domain.NewMessage("CARPATHIA", "TITANIC", domain.SENT, "COMING", "-.-. --- -- .. -. --.", base.Add(time.Minute))
	for _, m := range []domain.Message{second, first, third, other} {
		req.NoError(repo.Store(m))
	}

	// When listing TITANIC
	messages, err := repo.List("TITANIC", 0)
	req.NoError(err)

	// Then messages come newest first and only for that station
	req.Equal([]string{third.ID.String(), second.ID.String(), first.ID.String()},
		lo.Map(messages, func(m domain.Message, _ int) string { return m.ID.String() }))
	req.Equal(second, messages[1])
	req.True(base.Add(time.Minute).Equal(messages[1].At))
}

func TestJournalRepository_ListRespectsLimit(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, 2)
	base := time.Now()

	for i := range 5 {
		req.NoError(repo.Store(domain.NewMessage("CARPATHIA", "TITANIC", domain.SENT, "TEST", "- . ... -", base.Add(time.Duration(i)*time.Second))))
	}

	messages, err := repo.List("CARPATHIA", 0)
	req.NoError(err)
	req.Len(messages, 2)

	messages, err = repo.List("CARPATHIA", 4)
	req.NoError(err)
	req.Len(messages, 4)

	messages, err = repo.List("TITANIC", 0)
	req.NoError(err)
	req.Empty(messages)
}

func TestJournalRepository_Search(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, 0)
	now := time.Now()

	iceberg := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "WE HAVE STRUCK ICEBERG", ".-- .", now)
	boats := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "PUTTING PASSENGERS OFF IN SMALL BOATS", ".--. ..-", now.Add(time.Second))
	reply := domain.NewMessage("CARPATHIA", "TITANIC", domain.SENT, "WATCH FOR ICEBERG FIELD", ".-- .-", now.Add(2*time.Second))
	for _, m := range []domain.Message{iceberg, boats, reply} {
		req.NoError(repo.Store(m))
	}

	// Query is case-insensitive and spans stations
	found, err := repo.Search(context.Background(), "iceberg", 0)
	req.NoError(err)
	req.ElementsMatch([]string{iceberg.ID.String(), reply.ID.String()},
		lo.Map(found, func(m domain.Message, _ int) string { return m.ID.String() }))

	found, err = repo.Search(context.Background(), "lifeboat", 0)
	req.NoError(err)
	req.Empty(found)
}

func TestKey_IsChronological(t *testing.T) {
	req := require.New(t)
	early := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "A", ".-", time.Unix(9, 0))
	late := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "A", ".-", time.Unix(10, 0))

	req.Less(Key(early), Key(late))
	req.Contains(Key(early), "journal:TITANIC:09223372045854775808:")
}

func TestKey_IsChronologicalBeforeEpoch(t *testing.T) {
	req := require.New(t)
	sinking := time.Date(1912, time.April, 15, 0, 15, 0, 0, time.UTC)

	times := []time.Time{sinking, sinking.Add(time.Minute), time.Unix(0, -1), time.Unix(0, 0), time.Unix(1, 0)}
	for i := 1; i < len(times); i++ {
		older := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "A", ".-", times[i-1])
		newer := domain.NewMessage("TITANIC", "CARPATHIA", domain.SENT, "A", ".-", times[i])
		req.Less(Key(older), Key(newer), "%s before %s", times[i-1], times[i])
	}
}
