package ingest

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVCanonicalHeader(t *testing.T) {
	dump := strings.Join([]string{
		"message_id,channel_username,channel_title,raw_text,timestamp,media_path",
		`101,DoctorsET,Doctors ET,"Paracetamol price 50 birr, call 09 12 345 678",2024-03-01 10:00:00,photos/DoctorsET_101.jpg`,
		`102,DoctorsET,Doctors ET,,2024-03-01 11:00:00,`,
	}, "\n")

	rows, stats, err := ReadCSV(strings.NewReader(dump), Options{}, zerolog.Nop())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, stats.Kept)

	assert.Equal(t, int64(101), rows[0].MessageID)
	assert.Equal(t, "DoctorsET", rows[0].ChannelUsername)
	assert.Equal(t, "Doctors ET", rows[0].ChannelTitle)
	assert.Contains(t, rows[0].Text, "price 50 birr")
	assert.Equal(t, "photos/DoctorsET_101.jpg", rows[0].MediaPath)
	assert.Equal(t, 2024, rows[0].Date.Year())

	// Null-ish columns come through as empty strings.
	assert.Empty(t, rows[1].Text)
	assert.Empty(t, rows[1].MediaPath)
}

func TestReadCSVScraperHeaderAliases(t *testing.T) {
	dump := strings.Join([]string{
		"Channel Title,Channel Username,ID,Message,Date,Media Path",
		`Doctors ET,DoctorsET,101,Stethoscope price 1200 ETB,2021-07-04 10:12:33,`,
	}, "\n")

	rows, _, err := ReadCSV(strings.NewReader(dump), Options{}, zerolog.Nop())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(101), rows[0].MessageID)
	assert.Equal(t, "Stethoscope price 1200 ETB", rows[0].Text)
}

func TestReadCSVRowValidation(t *testing.T) {
	long := strings.Repeat("a", 60)
	dump := strings.Join([]string{
		"message_id,channel_username,channel_title,raw_text,timestamp,media_path",
		`abc,DoctorsET,Doctors ET,text,2024-03-01 10:00:00,`,
		`102,,Doctors ET,text,2024-03-01 10:00:00,`,
		`103,DoctorsET,Doctors ET,text,not a date,`,
		`104,DoctorsET,Doctors ET,` + long + `,2024-03-01 10:00:00,`,
		`105,DoctorsET,Doctors ET,kept,2024-03-01 10:00:00,`,
	}, "\n")

	rows, stats, err := ReadCSV(strings.NewReader(dump), Options{MaxMessageLength: 50}, zerolog.Nop())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(105), rows[0].MessageID)

	assert.Equal(t, 1, stats.Drops[DropBadMessageID])
	assert.Equal(t, 1, stats.Drops[DropNoChannel])
	assert.Equal(t, 1, stats.Drops[DropBadTimestamp])
	assert.Equal(t, 1, stats.Drops[DropTooLong])
	assert.Equal(t, 5, stats.Rows)
}

func TestReadCSVLengthCapCountsCharacters(t *testing.T) {
	// 40 Amharic characters are 120 bytes; the cap is per character, so
	// the row must survive a cap of 50.
	short := strings.Repeat("መ", 40)
	long := strings.Repeat("መ", 60)
	dump := strings.Join([]string{
		"message_id,channel_username,channel_title,raw_text,timestamp,media_path",
		`101,DoctorsET,Doctors ET,` + short + `,2024-03-01 10:00:00,`,
		`102,DoctorsET,Doctors ET,` + long + `,2024-03-01 11:00:00,`,
	}, "\n")

	rows, stats, err := ReadCSV(strings.NewReader(dump), Options{MaxMessageLength: 50}, zerolog.Nop())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(101), rows[0].MessageID)
	assert.Equal(t, 1, stats.Drops[DropTooLong])
}

func TestReadCSVSanitizesText(t *testing.T) {
	dump := strings.Join([]string{
		"message_id,channel_username,channel_title,raw_text,timestamp,media_path",
		`101,DoctorsET,Doctors ET,Glucometer 💉 price 1200 birr,2024-03-01 10:00:00,`,
	}, "\n")

	rows, _, err := ReadCSV(strings.NewReader(dump), Options{}, zerolog.Nop())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].Text, "💉")
	assert.Contains(t, rows[0].Text, "price 1200 birr")
}

func TestReadCSVMissingColumn(t *testing.T) {
	dump := "message_id,channel_title\n1,Doctors ET\n"

	_, _, err := ReadCSV(strings.NewReader(dump), Options{}, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_username")
}

func TestReadCSVPreservesFileOrder(t *testing.T) {
	dump := strings.Join([]string{
		"message_id,channel_username,channel_title,raw_text,timestamp,media_path",
		`3,DoctorsET,Doctors ET,a,2024-03-03 10:00:00,`,
		`1,DoctorsET,Doctors ET,b,2024-03-01 10:00:00,`,
		`2,DoctorsET,Doctors ET,c,2024-03-02 10:00:00,`,
	}, "\n")

	rows, _, err := ReadCSV(strings.NewReader(dump), Options{}, zerolog.Nop())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{rows[0].MessageID, rows[1].MessageID, rows[2].MessageID})
}
