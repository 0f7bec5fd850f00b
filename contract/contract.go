//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"radio-lab/domain"
	"radio-lab/domain/packet"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Signal is a binary output device driven by the player (lamp, tone).
type Signal interface {
	Set(on bool) error
}

// Shell is the presentation side of a station.
type Shell interface {
	Log(message domain.Message)
	Status(text string)
}

type IJournal interface {
	Store(message domain.Message) error
}

type ITransmitter interface {
	Send(ctx context.Context, p packet.Packet) error
}

type IStation interface {
	Start(ctx context.Context) error
	Transmit(text string) error
	TransmitQuick() error
	TransmitCatalogue(index int) error
	Stop()
}
