package journal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/timovate/internal"
	"github.com/moyu-x/timovate/pkg/classifier"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "journal.db")

	j, err := Open(dbPath)
	require.NoError(t, err)
	defer j.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Expected database file to be created")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")

	exists, err := Exists(dbPath)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoFileExists(t, dbPath)

	exists, err = Exists(dir)
	require.NoError(t, err)
	assert.False(t, exists, "directory is not a journal")

	j, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	exists, err = Exists(dbPath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/x/journal.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "journal.db"), got)

	got, err = expandPath("/abs/journal.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/journal.db", got)
}

func TestBeginAndFinishRun(t *testing.T) {
	j := openTestJournal(t)

	runID, err := j.BeginRun(internal.ModeMove, "/src", "/tmp")
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	err = j.FinishRun(runID, internal.StatsSnapshot{FilesMoved: 3, DirsMoved: 1, TotalSize: 2048})
	require.NoError(t, err)

	runs, err := j.Runs(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, "move", run.Mode)
	assert.Equal(t, "/src", run.FromRoot)
	assert.Equal(t, "/tmp", run.ToRoot)
	assert.EqualValues(t, 3, run.FilesMoved)
	assert.EqualValues(t, 1, run.DirsMoved)
	assert.EqualValues(t, 2048, run.TotalSize)
	assert.NotNil(t, run.FinishedAt)
}

func TestRuns_OrderAndLimit(t *testing.T) {
	j := openTestJournal(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := j.BeginRun(internal.ModeRestore, "/tmp", "/src")
		require.NoError(t, err)
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := j.Runs(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestRecord_FileWithMimeType(t *testing.T) {
	j := openTestJournal(t)
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(pngPath, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0644))
	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("plain text"), 0644))

	runID, err := j.BeginRun(internal.ModeMove, "/src", dir)
	require.NoError(t, err)

	rec := j.Recorder(runID)
	assert.Equal(t, runID, rec.RunID())

	require.NoError(t, rec.Record(internal.Relocation{
		Kind: internal.KindFile, Src: "/src/image.png", Dest: pngPath, RelPath: "image.png", Size: 16,
	}))
	require.NoError(t, rec.Record(internal.Relocation{
		Kind: internal.KindFile, Src: "/src/notes.txt", Dest: txtPath, RelPath: "notes.txt", Size: 10,
	}))
	require.NoError(t, rec.Record(internal.Relocation{
		Kind: internal.KindDir, Src: "/src/d", Dest: filepath.Join(dir, "d"), RelPath: "d", Size: 99,
	}))

	entries, err := j.Entries(runID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "image/png", entries[0].MimeType)
	assert.Equal(t, classifier.CategoryImage, entries[0].Category)
	assert.Equal(t, classifier.UnknownMimeType, entries[1].MimeType)
	assert.Equal(t, classifier.CategoryOther, entries[1].Category)
	assert.Equal(t, "", entries[2].MimeType)
	assert.Equal(t, "", entries[2].Category)
	assert.Equal(t, "dir", entries[2].Kind)
	assert.EqualValues(t, 99, entries[2].Size)
	assert.Equal(t, PathHash("d"), entries[2].PathHash)
	assert.False(t, entries[0].MovedAt.IsZero())
}

func TestRecord_MissingDestination(t *testing.T) {
	j := openTestJournal(t)

	runID, err := j.BeginRun(internal.ModeMove, "/src", "/tmp")
	require.NoError(t, err)

	require.NoError(t, j.Record(runID, internal.Relocation{
		Kind: internal.KindFile, Src: "/src/gone", Dest: "/does/not/exist", RelPath: "gone",
	}))

	entries, err := j.Entries(runID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, classifier.UnknownMimeType, entries[0].MimeType)
}

func TestFindByRelPath(t *testing.T) {
	j := openTestJournal(t)

	moveID, err := j.BeginRun(internal.ModeMove, "/src", "/tmp")
	require.NoError(t, err)
	restoreID, err := j.BeginRun(internal.ModeRestore, "/tmp", "/src")
	require.NoError(t, err)

	rel := filepath.Join("dir", "file.txt")
	base := time.Now()
	require.NoError(t, j.Record(moveID, internal.Relocation{
		Kind: internal.KindDir, Src: "/src/" + rel, Dest: "/tmp/" + rel, RelPath: rel, MovedAt: base,
	}))
	require.NoError(t, j.Record(restoreID, internal.Relocation{
		Kind: internal.KindDir, Src: "/tmp/" + rel, Dest: "/src/" + rel, RelPath: rel, MovedAt: base.Add(time.Minute),
	}))
	require.NoError(t, j.Record(moveID, internal.Relocation{
		Kind: internal.KindDir, Src: "/src/other", Dest: "/tmp/other", RelPath: "other", MovedAt: base,
	}))

	entries, err := j.FindByRelPath(rel)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, restoreID, entries[0].RunID)
	assert.Equal(t, moveID, entries[1].RunID)
}

func TestRecord_Concurrent(t *testing.T) {
	j := openTestJournal(t)

	runID, err := j.BeginRun(internal.ModeMove, "/src", "/tmp")
	require.NoError(t, err)
	rec := j.Recorder(runID)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, rec.Record(internal.Relocation{
				Kind: internal.KindDir, Src: "/src", Dest: "/tmp", RelPath: filepath.Join("d", string(rune('a'+i))),
			}))
		}(i)
	}
	wg.Wait()

	entries, err := j.Entries(runID)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}
