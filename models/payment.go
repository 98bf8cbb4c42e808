package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type PaymentLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type PaymentSessionRequest struct {
	Currency          string
	LineItems         []PaymentLineItem
	SuccessURL        string
	CancelURL         string
	CustomerEmail     string
	ClientReferenceID string
	Metadata          map[string]string
}

type PaymentSession struct {
	ID  string
	URL string
}

const PaymentEventSessionCompleted = "checkout.session.completed"

// PaymentEvent is a verified gateway notification.
type PaymentEvent struct {
	ID                string
	Type              string
	SessionID         string
	ClientReferenceID string
	AmountTotal       int64
	Currency          string
	CustomerEmail     string
	PaymentMethod     string
	Metadata          map[string]string
}

// PaidLine is one cart row as it was priced when the payment session was
// created.
type PaidLine struct {
	ProductID      int
	Quantity       int
	UnitPriceCents int64
}

const (
	cartMetadataPrefix   = "cart_"
	cartMetadataValueMax = 500
	cartMetadataKeysMax  = 40
)

var ErrCartTooLarge = errors.New("cart has too many lines for one payment session")

// EncodePaidLines packs lines into gateway metadata as "id:qty:cents" triples,
// split across cart_0, cart_1, ... keys so no value exceeds the gateway's
// per-value limit.
func EncodePaidLines(lines []PaidLine) (map[string]string, error) {
	out := map[string]string{}
	var chunk strings.Builder
	flush := func() error {
		if chunk.Len() == 0 {
			return nil
		}
		if len(out) == cartMetadataKeysMax {
			return ErrCartTooLarge
		}
		out[cartMetadataPrefix+strconv.Itoa(len(out))] = chunk.String()
		chunk.Reset()
		return nil
	}

	for _, l := range lines {
		entry := fmt.Sprintf("%d:%d:%d", l.ProductID, l.Quantity, l.UnitPriceCents)
		if chunk.Len()+len(entry)+1 > cartMetadataValueMax {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		if chunk.Len() > 0 {
			chunk.WriteByte(',')
		}
		chunk.WriteString(entry)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodePaidLines reverses EncodePaidLines. ok is false when metadata carries
// no cart snapshot.
func DecodePaidLines(metadata map[string]string) (lines []PaidLine, ok bool, err error) {
	for i := 0; ; i++ {
		value, found := metadata[cartMetadataPrefix+strconv.Itoa(i)]
		if !found {
			break
		}
		ok = true
		for _, entry := range strings.Split(value, ",") {
			parts := strings.Split(entry, ":")
			if len(parts) != 3 {
				return nil, true, fmt.Errorf("malformed cart entry %q", entry)
			}
			id, errID := strconv.Atoi(parts[0])
			qty, errQty := strconv.Atoi(parts[1])
			cents, errCents := strconv.ParseInt(parts[2], 10, 64)
			if err := errors.Join(errID, errQty, errCents); err != nil {
				return nil, true, fmt.Errorf("malformed cart entry %q: %w", entry, err)
			}
			lines = append(lines, PaidLine{ProductID: id, Quantity: qty, UnitPriceCents: cents})
		}
	}
	return lines, ok, nil
}
