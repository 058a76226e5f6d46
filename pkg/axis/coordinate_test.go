package axis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateOf(t *testing.T) {
	assert.Equal(t, Coordinate(0), CoordinateOf(gdate(1970, time.January, 1)))
	assert.Equal(t, Coordinate(19802), CoordinateOf(gdate(2024, time.March, 20)))
	assert.Equal(t, Coordinate(0.5), CoordinateOf(time.Date(1970, time.January, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, Coordinate(-1), CoordinateOf(gdate(1969, time.December, 31)))

	tehran := time.FixedZone("IRST", 3*3600+30*60)
	assert.Equal(t, Coordinate(19802), CoordinateOf(time.Date(2024, time.March, 20, 3, 30, 0, 0, tehran)))
}

func TestCoordinate_Time(t *testing.T) {
	for _, want := range []time.Time{
		gdate(2024, time.March, 20),
		time.Date(2024, time.March, 20, 18, 45, 0, 0, time.UTC),
		gdate(1950, time.June, 1),
	} {
		assert.Equal(t, want, CoordinateOf(want).Time())
	}
}

func TestCoordinate_Day(t *testing.T) {
	assert.Equal(t, gdate(2024, time.March, 20), Coordinate(19802.99).Day())
	assert.Equal(t, gdate(2024, time.March, 20), Coordinate(19802).Day())
	assert.Equal(t, gdate(1969, time.December, 31), Coordinate(-0.25).Day())
}
