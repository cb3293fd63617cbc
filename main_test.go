package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"neurowatch/internal/eeg"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWaveformJSON(t *testing.T) {
	out, err := runCLI(t, "waveform", "--kind", "abnormal", "--length", "30", "--seed", "5")
	require.NoError(t, err)

	var samples []eeg.Sample
	require.NoError(t, json.Unmarshal([]byte(out), &samples))
	require.Len(t, samples, 30)
	require.Equal(t, 29, samples[29].Time)

	again, err := runCLI(t, "waveform", "--kind", "abnormal", "--length", "30", "--seed", "5")
	require.NoError(t, err)
	require.Equal(t, out, again)
}

func TestWaveformCSV(t *testing.T) {
	out, err := runCLI(t, "waveform", "--length", "3", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "time,amplitude,isAbnormal", lines[0])
	require.True(t, strings.HasPrefix(lines[3], "2,"))
}

func TestWaveformSummary(t *testing.T) {
	out, err := runCLI(t, "waveform", "--summary", "--length", "0")
	require.NoError(t, err)
	require.Contains(t, out, "samples=0")
}

func TestWaveformRejectsBadInput(t *testing.T) {
	_, err := runCLI(t, "waveform", "--kind", "flat")
	require.ErrorIs(t, err, eeg.ErrUnknownKind)

	_, err = runCLI(t, "waveform", "--format", "xml")
	require.Error(t, err)
}
