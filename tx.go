package tandem

import (
	"reflect"

	"github.com/tandemswap/tandem/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for the engine to take an action (make a state
// transition). It is just the request, and must be authorized by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate returns error if the message content is not valid. This
	// test is context free (it does not require the database).
	Validate() error

	// Path returns the routing path for this message. It is used by the
	// Router to locate the proper Handler. Must be alphanumeric
	// [0-9A-Za-z_/]+
	Path() string
}

// Tx represents the data sent from the user to the engine. It includes the
// actual message, along with information needed to authenticate the sender.
//
// Each host must define its own tx type, which embeds all the middlewares
// that it wishes to use.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures it is valid and
// loads it into the destination. Message destination must be a pointer.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	val := reflect.ValueOf(msg)
	if !val.Type().AssignableTo(dest.Type()) {
		return errors.Wrapf(errors.ErrType, "cannot load %T message into %T", msg, destination)
	}
	dest.Elem().Set(val.Elem())
	return nil
}
