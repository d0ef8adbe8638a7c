package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "4096", want: 4096},
		{in: "64KiB", want: 64 << 10},
		{in: "1MiB", want: 1 << 20},
		{in: "1kb", want: 1000},
		{in: "0", wantErr: true},
		{in: "5GiB", wantErr: true},
		{in: "lots", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	resetFlags()
	quiet = true
	t.Cleanup(resetFlags)

	out, err := captureOutput(t, func() error {
		printInfo("hello\n")
		printVerbose("hello\n")
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}
