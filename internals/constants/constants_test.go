package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayName(t *testing.T) {
	assert.Equal(t, "Senin", DayName(1))
	assert.Equal(t, "Jumat", DayName(5))
	assert.Equal(t, "", DayName(0))
	assert.Equal(t, "", DayName(6))
}

func TestTarif(t *testing.T) {
	assert.Equal(t, int64(5000), int64(PaymentAmount))
	assert.Equal(t, int64(30000), int64(InhalAmount))
	assert.Equal(t, 11, SessionsPerClass)
	assert.Equal(t, 11, ResponsiSessionNumber)
}
