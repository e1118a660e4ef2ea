package project

import (
	"reflect"
	"testing"
	"time"

	"github.com/betselot/telegram-market-extractor/internal/core/domain"
)

func rec(id int64, username, title string, phones []string) domain.ExtractedRecord {
	return domain.ExtractedRecord{
		MessageID:       id,
		ChannelUsername: username,
		ChannelTitle:    title,
		Date:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ProductName:     "Paracetamol",
		PriceInBirr:     50,
		ContactPhones:   phones,
	}
}

func TestChannelsFirstTitleWins(t *testing.T) {
	records := []domain.ExtractedRecord{
		rec(1, "doctorset", "Doctors ET", nil),
		rec(2, "doctorset", "Doctors Ethiopia", nil),
		rec(3, "medsupply", "Med Supply", nil),
	}

	got := Channels(records)

	want := []domain.Channel{
		{Username: "doctorset", Title: "Doctors ET"},
		{Username: "medsupply", Title: "Med Supply"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Channels() = %v, want %v", got, want)
	}
}

func TestChannelsReorderingChangesWinnerDeterministically(t *testing.T) {
	records := []domain.ExtractedRecord{
		rec(2, "doctorset", "Doctors Ethiopia", nil),
		rec(1, "doctorset", "Doctors ET", nil),
	}

	got := Channels(records)

	if len(got) != 1 || got[0].Title != "Doctors Ethiopia" {
		t.Errorf("Channels() = %v, want first-seen title Doctors Ethiopia", got)
	}
}

func TestProductsPassThrough(t *testing.T) {
	records := []domain.ExtractedRecord{
		rec(1, "doctorset", "Doctors ET", nil),
		rec(2, "doctorset", "Doctors ET", nil),
	}

	got := Products(records)

	if len(got) != len(records) {
		t.Fatalf("Products() len = %d, want %d", len(got), len(records))
	}

	for i, p := range got {
		if p.ProductID != records[i].MessageID {
			t.Errorf("product %d id = %d, want message id %d", i, p.ProductID, records[i].MessageID)
		}

		if p.ProductName != records[i].ProductName || p.PriceInBirr != records[i].PriceInBirr {
			t.Errorf("product %d does not mirror its record", i)
		}
	}
}

func TestContactsFirstNonEmptyListWins(t *testing.T) {
	records := []domain.ExtractedRecord{
		rec(1, "doctorset", "Doctors ET", nil),
		rec(2, "doctorset", "Doctors ET", []string{"0911223344"}),
		rec(3, "doctorset", "Doctors ET", []string{"0922334455", "0933445566"}),
		rec(4, "medsupply", "Med Supply", nil),
	}

	got := Contacts(records)

	want := []domain.Contact{
		{Username: "doctorset", Phones: []string{"0911223344"}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Contacts() = %v, want %v", got, want)
	}
}

func TestProjectionsIndependentOfEachOther(t *testing.T) {
	records := []domain.ExtractedRecord{
		rec(1, "doctorset", "Doctors ET", []string{"0911223344"}),
		rec(2, "medsupply", "Med Supply", nil),
	}

	channelsFirst := Channels(records)
	productsFirst := Products(records)
	contactsFirst := Contacts(records)

	// Re-derive in a different order; each projection is a pure function
	// of the stream.
	contactsSecond := Contacts(records)
	productsSecond := Products(records)
	channelsSecond := Channels(records)

	if !reflect.DeepEqual(channelsFirst, channelsSecond) ||
		!reflect.DeepEqual(productsFirst, productsSecond) ||
		!reflect.DeepEqual(contactsFirst, contactsSecond) {
		t.Error("projections are not stable across re-derivation")
	}
}
