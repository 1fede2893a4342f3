package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSysfsBattery(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "BAT0"), 0o755))
	capacity := filepath.Join(dir, "BAT0", "capacity")
	require.NoError(t, os.WriteFile(capacity, []byte("57\n"), 0o644))

	clock := time.Unix(0, 0)
	b := &SysfsBattery{Glob: filepath.Join(dir, "*", "capacity"), MaxAge: time.Minute, now: func() time.Time { return clock }}
	require.Equal(t, 57, b.Percentage())

	require.NoError(t, os.WriteFile(capacity, []byte("8\n"), 0o644))
	require.Equal(t, 57, b.Percentage(), "cached")
	clock = clock.Add(2 * time.Minute)
	require.Equal(t, 8, b.Percentage())

	missing := &SysfsBattery{Glob: filepath.Join(dir, "none", "capacity")}
	require.Equal(t, 100, missing.Percentage())
}

func TestTransferURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "http://10.0.0.2/", TransferURL("10.0.0.2", ":80"))
	require.Equal(t, "http://10.0.0.2:8080/", TransferURL("10.0.0.2", ":8080"))
	require.Equal(t, "http://127.0.0.1:9000/", TransferURL("10.0.0.2", "127.0.0.1:9000"))
	require.Equal(t, "http://10.0.0.2/", TransferURL("10.0.0.2", "garbage"))
}

type recordingRunner struct{ calls [][]string }

func (r *recordingRunner) Run(_ context.Context, cmd string, args ...string) (string, string, error) {
	r.calls = append(r.calls, append([]string{cmd}, args...))
	return "", "", nil
}

func TestPowerOff(t *testing.T) {
	t.Parallel()

	r := &recordingRunner{}
	require.NoError(t, PowerOff(context.Background(), r))
	require.Equal(t, [][]string{{"systemctl", "poweroff"}}, r.calls)
}
