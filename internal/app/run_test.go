package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/vk/nestgo/internal/profile"
)

const paymentsJSON = `[
	{"currency": "EUR", "country": "FR", "amount": 10},
	{"currency": "EUR", "country": "ES", "amount": 7}
]`

const paymentsTree = `{
  "EUR": {
    "ES": [
      {
        "amount": 7
      }
    ],
    "FR": [
      {
        "amount": 10
      }
    ]
  }
}
`

// runApp runs one conversion against in-memory streams and returns what
// landed on stdout and stderr.
func runApp(t *testing.T, cfg Config, stdin string) (string, string, error) {
	t.Helper()

	config, err := NewConfig(cfg)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	a := New(strings.NewReader(stdin), &out, &errOut, config)
	runErr := a.Run(context.Background())
	return out.String(), errOut.String(), runErr
}

func TestRunConvertsStdinToStdout(t *testing.T) {
	t.Parallel()

	out, errOut, err := runApp(t, Config{Levels: []string{"currency", "country"}}, paymentsJSON)

	require.NoError(t, err)
	assert.Equal(t, paymentsTree, out)
	assert.Empty(t, errOut)
}

func TestRunReadsInputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(paymentsJSON), 0600))

	cfg := Config{Levels: []string{"currency", "country"}, InputPath: path}
	out, _, err := runApp(t, cfg, "ignored stdin")

	require.NoError(t, err)
	assert.Equal(t, paymentsTree, out)
}

func TestRunWritesOutputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tree.json")
	cfg := Config{Levels: []string{"currency", "country"}, OutputPath: path}

	out, _, err := runApp(t, cfg, paymentsJSON)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, paymentsTree, string(written))
}

func TestRunMissingInputFile(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Levels:    []string{"currency"},
		InputPath: filepath.Join(t.TempDir(), "absent.json"),
	}
	out, _, err := runApp(t, cfg, "")

	require.Error(t, err)
	assert.Empty(t, out)
}

func TestRunStripsUTF8ByteOrderMark(t *testing.T) {
	t.Parallel()

	input := "\xEF\xBB\xBF" + paymentsJSON

	out, _, err := runApp(t, Config{Levels: []string{"currency", "country"}}, input)

	require.NoError(t, err)
	assert.Equal(t, paymentsTree, out)
}

func TestRunDecodesUTF16Input(t *testing.T) {
	t.Parallel()

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.Bytes([]byte(paymentsJSON))
	require.NoError(t, err)

	cfg := Config{Levels: []string{"currency", "country"}}
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	a := New(bytes.NewReader(encoded), &out, &errOut, config)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, paymentsTree, out.String())
}

func TestRunDuplicateRecords(t *testing.T) {
	t.Parallel()

	input := `[
		{"currency": "EUR", "country": "FR", "amount": 1},
		{"currency": "EUR", "country": "FR", "amount": 2}
	]`

	out, _, err := runApp(t, Config{Levels: []string{"currency", "country"}}, input)

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Duplicate nodes found: "), "got: %v", err)
	assert.Empty(t, out, "a failed conversion must not touch the output stream")
}

func TestRunInvalidStructure(t *testing.T) {
	t.Parallel()

	out, _, err := runApp(t, Config{Levels: []string{"currency"}}, `{"currency": "EUR"}`)

	require.Error(t, err)
	assert.Equal(t, "Invalid input data: input data must be a non-empty list of records", err.Error())
	assert.Empty(t, out)
}

func TestRunMissingAttributes(t *testing.T) {
	t.Parallel()

	input := `[
		{"currency": "EUR", "country": "FR"},
		{"currency": "EUR", "amount": 3},
		{"country": "ES"}
	]`

	out, errOut, err := runApp(t, Config{Levels: []string{"currency", "country"}}, input)

	require.Error(t, err)
	assert.Equal(t, "Badly formed input data: key attributes were missing in 2 records", err.Error())
	assert.Empty(t, out)

	// One diagnostic line per offending record, in input order.
	lines := strings.Split(strings.TrimSpace(errOut), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `Elements missing for record {"amount":3,"currency":"EUR"}`, lines[0])
	assert.Equal(t, `Elements missing for record {"country":"ES"}`, lines[1])
}

func TestRunInvalidJSON(t *testing.T) {
	t.Parallel()

	out, _, err := runApp(t, Config{Levels: []string{"currency"}}, `[{"currency": ]`)

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Invalid json in input data: "), "got: %v", err)
	assert.Empty(t, out)
}

func TestRunProfileLevels(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profiles.hcl")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
profile "by_location" {
  levels = ["currency", "country"]
}
`), 0600))

	cfg := Config{ProfilesPath: profilePath, ProfileName: "by_location"}
	out, _, err := runApp(t, cfg, paymentsJSON)

	require.NoError(t, err)
	assert.Equal(t, paymentsTree, out)
}

func TestRunUnknownProfile(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profiles.hcl")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
profile "by_location" {
  levels = ["currency"]
}
`), 0600))

	cfg := Config{ProfilesPath: profilePath, ProfileName: "by_amount"}
	_, _, err := runApp(t, cfg, paymentsJSON)

	require.ErrorIs(t, err, profile.ErrUnknownProfile)
}

func TestRunDebugLogsGoToErrorStream(t *testing.T) {
	t.Parallel()

	cfg := Config{Levels: []string{"currency", "country"}, LogLevel: "debug"}
	out, errOut, err := runApp(t, cfg, paymentsJSON)

	require.NoError(t, err)
	assert.Equal(t, paymentsTree, out, "logging must never leak into the output stream")
	assert.Contains(t, errOut, "Input read.")
	assert.Contains(t, errOut, "level=DEBUG")
}
