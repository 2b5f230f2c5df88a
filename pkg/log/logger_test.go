package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	defer func() {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{})
	}()

	err := Configure("debug", "json")
	assert.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	err = Configure("bad", "")
	assert.Error(t, err)

	err = Configure("", "xml")
	assert.Error(t, err)
}
