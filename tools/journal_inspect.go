package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"radio-lab/infrastructure/storage"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

// Dumps a persisted journal (JOURNAL_PATH) as a table.
func main() {
	journalPath := flag.String("journal", "./journal", "Journal directory (JOURNAL_PATH)")
	station := flag.String("station", "", "Restrict to one station")
	flag.Parse()

	db, err := openDB(filepath.Join(*journalPath, "badger"))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Station", "Direction", "Peer", "Text", "Morse", "Decoded"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	prefix := []byte("journal:")
	if *station != "" {
		prefix = []byte(fmt.Sprintf("journal:%s:", strings.ToUpper(*station)))
	}

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				message, err := storage.Decode(v)
				if err != nil {
					fmt.Printf("Error decoding key %s: %v\n", string(item.Key()), err)
					return nil
				}
				decoded := message.Decoded
				if decoded == "" {
					decoded = "-"
				}
				table.Append([]string{
					message.At.Local().Format("2006-01-02 15:04:05"),
					message.Station,
					message.Direction.Label(),
					message.Peer,
					message.Text,
					message.Morse,
					decoded,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
