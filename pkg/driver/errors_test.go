package driver

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	err := Hardwaref("? SP1\r", "sensor is unplugged")
	assert.Equal(t, `command "? SP1\r" returned error: sensor is unplugged`, err.Error())

	err = Driverf("? SP1\r", "no answer")
	assert.Equal(t, `command "? SP1\r": no answer`, err.Error())
}

func TestErrorClassification(t *testing.T) {
	hw := Hardwaref("Q", "fault")
	drv := Driverf("Q", "bad frame")

	assert.True(t, IsHardwareError(hw))
	assert.False(t, IsDriverError(hw))
	assert.True(t, IsDriverError(drv))
	assert.False(t, IsHardwareError(drv))
	assert.False(t, IsHardwareError(nil))
}

func TestClassificationSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("polling instrument: %w", Hardwaref("Q", "fault"))
	assert.True(t, IsHardwareError(wrapped))

	stacked := errors.Wrap(Driverf("Q", "bad frame"), "polling instrument")
	assert.True(t, IsDriverError(stacked))
}
