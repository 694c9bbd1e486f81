// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunMockConsole(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, runMockConsole(ctx, 10*time.Millisecond, &out))

	text := out.String()
	require.Contains(t, text, "BESTPOS")
	require.Contains(t, text, "BESTVEL")
	require.Contains(t, text, "fix=GPS_FIX")
	require.Contains(t, text, "frames=")
}
