package domain

import "time"

// RawMessage is one ingested row from a scraped Telegram channel.
// Text and MediaPath are empty when the source row had no value.
type RawMessage struct {
	MessageID       int64
	ChannelUsername string
	ChannelTitle    string
	Text            string
	Date            time.Time
	MediaPath       string
}

// ExtractedRecord is the per-message extraction result after conflict
// resolution. At most one exists per MessageID. ContactPhones is nil when
// the message carried no phone number.
type ExtractedRecord struct {
	MessageID       int64
	ChannelTitle    string
	ChannelUsername string
	Date            time.Time
	MediaPath       string
	ProductName     string
	PriceInBirr     int64
	ContactPhones   []string
}

// Channel is the deduplicated channel identity view, unique per username.
type Channel struct {
	Username string
	Title    string
}

// Product is one product listing per extracted record. ProductID is the
// originating message id.
type Product struct {
	ProductID   int64
	ProductName string
	Date        time.Time
	PriceInBirr int64
}

// Contact is the per-channel contact view, unique per username. Only
// channels with at least one extracted phone number appear.
type Contact struct {
	Username string
	Phones   []string
}

// Detection is an object-detection annotation keyed by media path,
// produced by an external detector. It is stored alongside the product
// relation but never joined into the entity views.
type Detection struct {
	MediaPath  string
	Label      string
	Confidence float64
}
