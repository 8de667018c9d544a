package ride

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		isNull  bool
		wantErr error
	}{
		{name: "plain value", input: "31.5204", want: "31.5204"},
		{name: "rounds to 8 places", input: "74.358712345678", want: "74.35871235"},
		{name: "rounds half up", input: "1.000000005", want: "1.00000001"},
		{name: "negative", input: "-73.95", want: "-73.95"},
		{name: "whitespace trimmed", input: "  31.5  ", want: "31.5"},
		{name: "empty is null", input: "", isNull: true},
		{name: "blank is null", input: "   ", isNull: true},
		{name: "garbage", input: "not-a-number", wantErr: ErrInvalidCoordinate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCoordinate(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.isNull {
				assert.False(t, got.Valid)
				return
			}
			require.True(t, got.Valid)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Decimal.Equal(want), "got %s want %s", got.Decimal, want)
		})
	}
}

func TestNormalizeFuelType(t *testing.T) {
	tests := []struct {
		input   string
		want    FuelType
		wantErr bool
	}{
		{input: "petrol", want: FuelPetrol},
		{input: "PETROL", want: FuelPetrol},
		{input: "  Diesel ", want: FuelDiesel},
		{input: "cng", want: FuelCNG},
		{input: "Electric", want: FuelElectric},
		{input: "hybrid", want: FuelHybrid},
		{input: "", want: FuelPetrol},
		{input: "kerosene", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeFuelType(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidFuelType, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestNormalizeTripType(t *testing.T) {
	tests := []struct {
		input   string
		want    TripType
		wantErr bool
	}{
		{input: "one-way", want: TripOneWay},
		{input: "One_Way", want: TripOneWay},
		{input: "round-trip", want: TripRoundTrip},
		{input: "ROUND_TRIP", want: TripRoundTrip},
		{input: "1-way", want: TripOneWay},
		{input: "1_way", want: TripOneWay},
		{input: "2-way", want: TripRoundTrip},
		{input: "2_way", want: TripRoundTrip},
		{input: "", want: TripOneWay},
		{input: "3-way", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeTripType(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTripType, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestCombineSchedule(t *testing.T) {
	t.Run("both empty means unscheduled", func(t *testing.T) {
		got, err := CombineSchedule("", "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("date without time rejected", func(t *testing.T) {
		_, err := CombineSchedule("25-12-2026", "")
		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("time without date rejected", func(t *testing.T) {
		_, err := CombineSchedule("", "09:30 AM")
		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("combines date and time", func(t *testing.T) {
		got, err := CombineSchedule("25-12-2026", "09:30 AM")
		require.NoError(t, err)
		require.NotNil(t, got)
		want := time.Date(2026, 12, 25, 9, 30, 0, 0, time.Local)
		assert.True(t, got.Equal(want), "got %s want %s", got, want)
	})

	t.Run("bare hour accepted", func(t *testing.T) {
		got, err := CombineSchedule("25-12-2026", "9:30 AM")
		require.NoError(t, err)
		require.NotNil(t, got)
		want := time.Date(2026, 12, 25, 9, 30, 0, 0, time.Local)
		assert.True(t, got.Equal(want), "got %s want %s", got, want)
	})

	t.Run("lowercase meridiem accepted", func(t *testing.T) {
		got, err := CombineSchedule("01-01-2027", "11:45 pm")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 23, got.Hour())
		assert.Equal(t, 45, got.Minute())
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := CombineSchedule("2026-12-25", "09:30 AM")
		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("bad time format", func(t *testing.T) {
		_, err := CombineSchedule("25-12-2026", "21:30")
		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})
}
