package main

import (
	"bytes"
	"strings"
	"testing"

	"cyberdesk-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPasswordHash(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPasswordHash(&buf, "counter-pass"))

	hash := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.True(t, utils.CheckPasswordHash("counter-pass", hash))
	assert.False(t, utils.CheckPasswordHash("other", hash))

	gate := utils.NewSessionGate(utils.Credentials{Username: "admin", PasswordHash: hash}, "k", 0, false)
	assert.True(t, gate.Authenticate("admin", "counter-pass"))
}
