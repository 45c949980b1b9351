package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "1234********3456", MaskCard("1234567890123456"))
	assert.Equal(t, "****", MaskCard("123"))
}

func TestSetLevel(t *testing.T) {
	Init()
	SetLevel("debug")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	SetLevel("nonsense")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
}
