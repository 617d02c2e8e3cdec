package export

import (
	"testing"

	"github.com/banjirwatch/infobanjir/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReformatLastUpdated(t *testing.T) {
	t.Run("day-first timestamp round-trips", func(t *testing.T) {
		got, ok := ReformatLastUpdated("01/02/2024 08:00")
		require.True(t, ok)
		assert.Equal(t, "01/02/2024 08:00", got)
	})

	t.Run("seconds variant is normalized", func(t *testing.T) {
		got, ok := ReformatLastUpdated("01/02/2024 08:00:30")
		require.True(t, ok)
		assert.Equal(t, "01/02/2024 08:00", got)
	})

	t.Run("single-digit day and month", func(t *testing.T) {
		got, ok := ReformatLastUpdated("1/2/2024 08:00")
		require.True(t, ok)
		assert.Equal(t, "01/02/2024 08:00", got)
	})

	t.Run("unparseable input", func(t *testing.T) {
		_, ok := ReformatLastUpdated("not a date")
		assert.False(t, ok)
	})

	t.Run("nonexistent calendar date", func(t *testing.T) {
		_, ok := ReformatLastUpdated("31/02/2024 08:00")
		assert.False(t, ok)
	})
}

func TestTableRecords(t *testing.T) {
	table := entities.Table{
		Columns: []string{
			entities.ColStationName,
			entities.ColLastUpdated,
			entities.ColWaterLevel,
			entities.ColStateCode,
		},
		Rows: [][]string{
			{"Sg. Klang at Kg. Baru", "01/02/2024 08:00", "2.35", "SEL"},
			{"Sg. Gombak", "garbage", "", "SEL"},
		},
	}

	records := TableRecords(table)
	require.Len(t, records, 2)

	t.Run("numeric column emits numbers", func(t *testing.T) {
		assert.Equal(t, 2.35, records[0][entities.ColWaterLevel])
	})

	t.Run("string columns stay strings", func(t *testing.T) {
		assert.Equal(t, "Sg. Klang at Kg. Baru", records[0][entities.ColStationName])
		assert.Equal(t, "SEL", records[0][entities.ColStateCode])
	})

	t.Run("last updated is reformatted, not raw", func(t *testing.T) {
		assert.Equal(t, "01/02/2024 08:00", records[0][entities.ColLastUpdated])
	})

	t.Run("unparseable timestamp becomes null", func(t *testing.T) {
		assert.Nil(t, records[1][entities.ColLastUpdated])
	})

	t.Run("missing value becomes null, not empty string", func(t *testing.T) {
		assert.Nil(t, records[1][entities.ColWaterLevel])
	})
}

func TestTableRecordsNumericInference(t *testing.T) {
	t.Run("one non-numeric cell keeps the column as strings", func(t *testing.T) {
		table := entities.Table{
			Columns: []string{entities.ColWaterLevel},
			Rows:    [][]string{{"2.35"}, {"N/A"}},
		}
		records := TableRecords(table)
		assert.Equal(t, "2.35", records[0][entities.ColWaterLevel])
		assert.Equal(t, "N/A", records[1][entities.ColWaterLevel])
	})

	t.Run("empty cells do not block numeric inference", func(t *testing.T) {
		table := entities.Table{
			Columns: []string{entities.ColWaterLevel},
			Rows:    [][]string{{"2.35"}, {""}},
		}
		records := TableRecords(table)
		assert.Equal(t, 2.35, records[0][entities.ColWaterLevel])
		assert.Nil(t, records[1][entities.ColWaterLevel])
	})
}
