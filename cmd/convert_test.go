package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsphweid/gabc2ly/gabc"
	"github.com/jsphweid/gabc2ly/midi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

const kyrie = `name: Kyrie;
%%
(c4) Ky(f)ri(gh)e(h.) (;) e(ixhi)lé(ij)i(h)son.(h) (::)
`

func writeSource(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertFile(t *testing.T) {
	t.Setenv("GABC2LY_TEMPO", "")
	path := writeSource(t, "kyrie.gabc", kyrie)
	midiOut := filepath.Join(t.TempDir(), "kyrie.mid")

	var buf bytes.Buffer
	err := convertFile(path, 1, "", midiOut, &buf)

	assert := assert.New(t)
	assert.Nil(err)
	assert.True(strings.HasPrefix(buf.String(), "\\version \"2.22.2\"\n\\language \"english\"\n"))
	assert.Equal(2, strings.Count(buf.String(), "\\score {"))
	assert.Contains(buf.String(), "bf")

	s, err := midi.ReadMidiFile(midiOut)
	assert.Nil(err)
	assert.Len(midi.PlayedNotes(s), 10)
}

func TestConvertFileToOut(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)
	out := filepath.Join(t.TempDir(), "kyrie.ly")

	var buf bytes.Buffer
	assert := assert.New(t)
	assert.Nil(convertFile(path, 1, out, "", &buf))
	assert.Empty(buf.String())

	dat, err := os.ReadFile(out)
	assert.Nil(err)
	assert.Contains(string(dat), "\\sequential {")
}

type failingClose struct {
	bytes.Buffer
}

func (f *failingClose) Close() error {
	return errors.New("disk full")
}

func TestConvertFileReportsCloseError(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)
	defer func(orig func(string) (io.WriteCloser, error)) { createOut = orig }(createOut)
	f := &failingClose{}
	createOut = func(string) (io.WriteCloser, error) { return f, nil }

	assert := assert.New(t)
	err := convertFile(path, 1, "kyrie.ly", "", io.Discard)
	assert.EqualError(err, "disk full")
	assert.Contains(f.String(), "\\sequential {")
}

func TestConvertFileBadOutPath(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)
	out := filepath.Join(t.TempDir(), "missing", "kyrie.ly")

	assert := assert.New(t)
	assert.NotNil(convertFile(path, 1, out, "", io.Discard))
}

func TestConvertFileUnsupported(t *testing.T) {
	path := writeSource(t, "bad.gabc", "(c4) A(f?)")

	var buf bytes.Buffer
	err := convertFile(path, 1, "", "", &buf)

	assert := assert.New(t)
	assert.True(errors.Is(err, gabc.ErrUnsupportedToken))
	assert.Empty(buf.String())
}

func TestTextCommand(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"text", path})
	defer rootCmd.SetOut(nil)

	assert := assert.New(t)
	assert.Nil(rootCmd.Execute())
	assert.Equal("\n Kyrie  eléison. \n\n", buf.String())
}

func startWatch(t *testing.T, path string, calls *int32) (context.CancelFunc, chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 50*time.Millisecond, func() {
			atomic.AddInt32(calls, 1)
		})
	}()
	// the first conversion runs once the watcher is in place
	assert.Eventually(t, func() bool { return atomic.LoadInt32(calls) == 1 }, time.Second, 5*time.Millisecond)
	return cancel, done
}

func TestWatchConvertsOnWrite(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)
	var calls int32
	cancel, done := startWatch(t, path, &calls)
	defer cancel()

	assert := assert.New(t)
	assert.Nil(os.WriteFile(path, []byte(kyrie+"(h)"), 0666))
	assert.Nil(os.WriteFile(path, []byte(kyrie+"(hi)"), 0666))
	assert.Eventually(func() bool { return atomic.LoadInt32(&calls) == 2 }, 2*time.Second, 5*time.Millisecond)

	// both writes were one burst
	time.Sleep(150 * time.Millisecond)
	assert.Equal(int32(2), atomic.LoadInt32(&calls))

	cancel()
	assert.Nil(<-done)
}

func TestWatchConvertsOnRenameOver(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)
	var calls int32
	cancel, done := startWatch(t, path, &calls)
	defer cancel()

	assert := assert.New(t)
	tmp := filepath.Join(filepath.Dir(path), "kyrie.gabc~")
	assert.Nil(os.WriteFile(tmp, []byte(kyrie+"(h)"), 0666))
	assert.Nil(os.Rename(tmp, path))
	assert.Eventually(func() bool { return atomic.LoadInt32(&calls) == 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.Nil(<-done)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)
	var calls int32
	cancel, done := startWatch(t, path, &calls)
	defer cancel()

	assert := assert.New(t)
	assert.Nil(os.WriteFile(filepath.Join(filepath.Dir(path), "other.gabc"), []byte(kyrie), 0666))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(int32(1), atomic.LoadInt32(&calls))

	cancel()
	assert.Nil(<-done)
}

func TestWatchDropsPendingConvertOnExit(t *testing.T) {
	path := writeSource(t, "kyrie.gabc", kyrie)
	var calls int32
	cancel, done := startWatch(t, path, &calls)

	assert := assert.New(t)
	assert.Nil(os.WriteFile(path, []byte(kyrie+"(h)"), 0666))
	cancel()
	assert.Nil(<-done)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(int32(1), atomic.LoadInt32(&calls))
}
