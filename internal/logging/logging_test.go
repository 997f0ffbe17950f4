package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"fitness-tracker/backend/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithOutput(&buf, "debug", "json")
	log.WithField("route", "/class").Debug("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "/class", line["route"])
}

func TestNewWithOutputUnknownLevel(t *testing.T) {
	log := logging.NewWithOutput(&bytes.Buffer{}, "loud", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
