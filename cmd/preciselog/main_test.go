package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/preciselog/core"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"tokyo micros", []string{"render", "1672531200.123456", "--tz", "Asia/Tokyo", "-d", "6"}, "2023-01-01T09:00:00.123456+09:00\n"},
		{"tokyo millis", []string{"render", "1672531200.123456", "--tz", "Asia/Tokyo"}, "2023-01-01T09:00:00.123+09:00\n"},
		{"no fraction", []string{"render", "1672531200.999", "--tz", "UTC", "-d", "0"}, "2023-01-01T00:00:00+00:00\n"},
		{"padded", []string{"render", "0", "--tz", "UTC", "-d", "9"}, "1970-01-01T00:00:00.000000000+00:00\n"},
		{"several", []string{"render", "0", "1", "--tz", "UTC", "-d", "0"}, "1970-01-01T00:00:00+00:00\n1970-01-01T00:00:01+00:00\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	_, _, err := run(t, "render", "0", "-d", "-1")
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, _, err = run(t, "render", "0", "--tz", "Mars/Olympus")
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, _, err = run(t, "render", "yesterday")
	assert.Error(t, err)
}

func TestRender_Verbose(t *testing.T) {
	out, errOut, err := run(t, "render", "0", "--tz", "UTC", "-v")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00.000+00:00\n", out)
	assert.Contains(t, errOut, "renderer ready")
}

func TestEmit_Text(t *testing.T) {
	out, _, err := run(t, "emit",
		"-m", "request handled",
		"--epoch", "1672531200.123456",
		"--tz", "Asia/Tokyo",
		"-d", "6",
		"status=200", "user=alice",
	)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01T09:00:00.123456+09:00 [INFO] request handled status=200 user=alice\n", out)
}

func TestEmit_JSON(t *testing.T) {
	out, _, err := run(t, "emit",
		"-f", "json",
		"-l", "warn",
		"-n", "api",
		"-m", "slow",
		"--epoch", "1672531200.5",
		"--tz", "UTC",
		"--rename", "timestamp=ts,level=lvl",
		"ms=12.5", "ok=true",
	)
	require.NoError(t, err)
	assert.Equal(t, `{"ts":"2023-01-01T00:00:00.500+00:00","lvl":"WARN","logger":"api","message":"slow","ms":12.5,"ok":true}`+"\n", out)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &data))
}

func TestEmit_Template(t *testing.T) {
	out, _, err := run(t, "emit",
		"-t", "{level}|{message}|{user}",
		"-m", "hi",
		"user=bob",
	)
	require.NoError(t, err)
	assert.Equal(t, "INFO|hi|bob\n", out)
}

func TestEmit_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nfrac_digits: 0\ntimezone: Asia/Tokyo\n"), 0o644))

	out, _, err := run(t, "emit", "-c", path, "-m", "x", "--epoch", "0")
	require.NoError(t, err)
	assert.Equal(t, `{"timestamp":"1970-01-01T09:00:00+09:00","level":"INFO","message":"x"}`+"\n", out)

	// flags win over the file
	out, _, err = run(t, "emit", "-c", path, "-m", "x", "--epoch", "0", "-d", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"1970-01-01T09:00:00.00+09:00"`)
}

func TestEmit_Errors(t *testing.T) {
	_, _, err := run(t, "emit", "novalue")
	assert.Error(t, err)

	_, _, err = run(t, "emit", "-l", "loud")
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, _, err = run(t, "emit", "-f", "xml")
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, _, err = run(t, "emit", "--strict", "-t", "{message")
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("frac_digits: 6\ntimezone: Europe/Berlin\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("frac_digits: -1\ntimezone: Nowhere/Land\n"), 0o644))

	out, _, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	out, _, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 problem(s)")
	assert.Contains(t, out, "FracDigits")
	assert.Contains(t, out, "Timezone")
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, int64(3), parseScalar("3"))
	assert.Equal(t, 2.5, parseScalar("2.5"))
	assert.Equal(t, true, parseScalar("true"))
	assert.Equal(t, "alice", parseScalar("alice"))
}

func TestEmit_RecordID(t *testing.T) {
	out, _, err := run(t, "emit", "-f", "json", "-m", "x", "--record-id")
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, data["record_id"])
}
