package swap

import (
	"strconv"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/orm"
)

const (
	eventInitiated = "swap_initiated"
	eventAccepted  = "swap_accepted"
	eventCancelled = "swap_cancelled"
)

func initiatedEvent(id []byte, s *Swap) tandem.Event {
	return tandem.NewEvent(eventInitiated,
		tandem.Pair{Key: "swap_id", Value: orderKey(id)},
		tandem.Pair{Key: "initiator", Value: s.Initiator.String()},
		tandem.Pair{Key: "counterparty", Value: s.Counterparty.String()},
		tandem.Pair{Key: "initiator_asset", Value: strconv.FormatInt(s.InitiatorAsset, 10)},
		tandem.Pair{Key: "counterparty_asset", Value: strconv.FormatInt(s.CounterpartyAsset, 10)},
	)
}

func acceptedEvent(id []byte, s *Swap) tandem.Event {
	return tandem.NewEvent(eventAccepted,
		tandem.Pair{Key: "swap_id", Value: orderKey(id)},
		tandem.Pair{Key: "initiator", Value: s.Initiator.String()},
		tandem.Pair{Key: "counterparty", Value: s.Counterparty.String()},
	)
}

func cancelledEvent(id []byte, s *Swap) tandem.Event {
	return tandem.NewEvent(eventCancelled,
		tandem.Pair{Key: "swap_id", Value: orderKey(id)},
		tandem.Pair{Key: "initiator", Value: s.Initiator.String()},
	)
}

func orderKey(id []byte) string {
	return strconv.FormatInt(orm.DecodeSequence(id), 10)
}
