package checkout

import "luminacine/internal/data/entity"

const DefaultServiceFee entity.Amount = 5000

type Quote struct {
	SeatCount  int
	UnitPrice  entity.Amount
	Subtotal   entity.Amount
	ServiceFee entity.Amount
	Total      entity.Amount
}

// Price derives the order total. It is recomputed on every read.
func Price(seatCount int, unitPrice, serviceFee entity.Amount) Quote {
	subtotal := entity.Amount(seatCount) * unitPrice
	return Quote{
		SeatCount:  seatCount,
		UnitPrice:  unitPrice,
		Subtotal:   subtotal,
		ServiceFee: serviceFee,
		Total:      subtotal + serviceFee,
	}
}
