// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/platform/logging"
)

/*
TestNewWithWriter_Console verifies JSON output, the app attribute and level gating.
*/
func TestNewWithWriter_Console(t *testing.T) {
	var buffer bytes.Buffer
	logger, closer := logging.NewWithWriter(&buffer, logging.Options{App: "secureblog-api"})
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("visible", "k", "v")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &record))
	assert.Equal(t, "visible", record["msg"])
	assert.Equal(t, "secureblog-api", record["app"])
	assert.Equal(t, "v", record["k"])
}

/*
TestNewWithWriter_File duplicates records into the rotated file.
*/
func TestNewWithWriter_File(t *testing.T) {
	var buffer bytes.Buffer
	path := filepath.Join(t.TempDir(), "api.log")

	logger, closer := logging.NewWithWriter(&buffer, logging.Options{
		App:       "secureblog-api",
		Debug:     true,
		File:      path,
		MaxSizeMB: 1,
	})

	logger.Debug("to_both")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to_both")
	assert.Contains(t, buffer.String(), "to_both")
}
