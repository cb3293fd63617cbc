package uploads

import (
	"sync"
	"testing"
	"time"

	"neurowatch/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeScheduler holds callbacks until the test fires them.
type fakeScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (s *fakeScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
	s.delays = append(s.delays, d)
}

func (s *fakeScheduler) fire(i int) {
	s.mu.Lock()
	fn := s.pending[i]
	s.mu.Unlock()
	fn()
}

// sequenceScorer hands out scores in order.
type sequenceScorer struct {
	scores []int
	next   int
}

func (s *sequenceScorer) Score() int {
	score := s.scores[s.next%len(s.scores)]
	s.next++
	return score
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC) }

func newTestTracker(mode KeyMode, seed []models.UploadedFile, scores ...int) (*Tracker, *fakeScheduler, *[]models.UploadedFile) {
	sched := &fakeScheduler{}
	var completed []models.UploadedFile
	if len(scores) == 0 {
		scores = []int{23}
	}
	tr := NewTracker(zap.NewNop(), seed, Options{
		Delay:             3 * time.Second,
		AllowedExtensions: []string{".csv", ".edf"},
		KeyMode:           mode,
		Scorer:            &sequenceScorer{scores: scores},
		Scheduler:         sched,
		OnComplete:        func(f models.UploadedFile) { completed = append(completed, f) },
		Now:               fixedNow,
	})
	return tr, sched, &completed
}

func TestStartCreatesProcessingRecord(t *testing.T) {
	tr, sched, _ := newTestTracker(KeyByID, nil)

	started, err := tr.Start([]string{"sample.csv"})
	require.NoError(t, err)
	require.Len(t, started, 1)

	rec := started[0]
	require.Equal(t, "sample.csv", rec.Name)
	require.Equal(t, models.UploadProcessing, rec.Status)
	require.Equal(t, "2026-10-19", rec.Day())
	require.False(t, rec.HasRiskScore())
	require.NotEmpty(t, rec.ID)

	require.Equal(t, []time.Duration{3 * time.Second}, sched.delays)
	require.True(t, tr.Processing())
}

func TestCompletionAssignsScore(t *testing.T) {
	tr, sched, completed := newTestTracker(KeyByID, nil, 31)
	_, err := tr.Start([]string{"sample.csv"})
	require.NoError(t, err)

	sched.fire(0)

	files := tr.List()
	require.Equal(t, models.UploadCompleted, files[0].Status)
	require.Equal(t, 31, files[0].Score())
	require.False(t, tr.Processing())
	require.Len(t, *completed, 1)
}

func TestMultipleFilesCompleteIndependently(t *testing.T) {
	tr, sched, _ := newTestTracker(KeyByID, nil, 11, 22)
	_, err := tr.Start([]string{"a.csv", "b.EDF"})
	require.NoError(t, err)

	sched.fire(1)
	files := tr.List()
	require.Equal(t, models.UploadProcessing, files[0].Status)
	require.Equal(t, models.UploadCompleted, files[1].Status)
	require.Equal(t, 11, files[1].Score())

	sched.fire(0)
	files = tr.List()
	require.Equal(t, 22, files[0].Score())
}

func TestDuplicateNamesKeyedByIDEachKeepOwnScore(t *testing.T) {
	tr, sched, _ := newTestTracker(KeyByID, nil, 12, 34)
	_, err := tr.Start([]string{"dup.csv"})
	require.NoError(t, err)
	_, err = tr.Start([]string{"dup.csv"})
	require.NoError(t, err)

	sched.fire(1)
	files := tr.List()
	require.Equal(t, models.UploadProcessing, files[0].Status)
	require.Equal(t, 12, files[1].Score())

	sched.fire(0)
	files = tr.List()
	require.Equal(t, 34, files[0].Score())
	require.Equal(t, 12, files[1].Score())
}

func TestDuplicateNamesKeyedByNameLastCompletionWins(t *testing.T) {
	tr, sched, completed := newTestTracker(KeyByName, nil, 12, 13, 38, 39)
	_, err := tr.Start([]string{"dup.csv", "dup.csv"})
	require.NoError(t, err)

	// The first completion updates both records with the same name.
	sched.fire(0)
	files := tr.List()
	require.Equal(t, models.UploadCompleted, files[0].Status)
	require.Equal(t, models.UploadCompleted, files[1].Status)
	require.Equal(t, 12, files[0].Score())
	require.Equal(t, 13, files[1].Score())

	// The second completion overwrites both: the last callback wins.
	sched.fire(1)
	files = tr.List()
	require.Equal(t, 38, files[0].Score())
	require.Equal(t, 39, files[1].Score())
	require.Len(t, *completed, 4)
}

func TestStartValidation(t *testing.T) {
	tr, sched, _ := newTestTracker(KeyByID, nil)

	_, err := tr.Start(nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = tr.Start([]string{"  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = tr.Start([]string{"ok.csv", "notes.txt"})
	require.ErrorIs(t, err, ErrUnsupportedExtension)

	require.Empty(t, tr.List())
	require.Empty(t, sched.pending)
}

func TestStartStripsDirectories(t *testing.T) {
	tr, _, _ := newTestTracker(KeyByID, nil)
	started, err := tr.Start([]string{"/home/me/scan.edf"})
	require.NoError(t, err)
	require.Equal(t, "scan.edf", started[0].Name)
}

func TestLatestIsFirstCompleted(t *testing.T) {
	seed := []models.UploadedFile{
		models.UploadedFile{ID: "seed-1", Name: "eeg_recording_2024_01_15.csv"}.WithScore(23),
	}
	tr, sched, _ := newTestTracker(KeyByID, seed, 30)

	latest, ok := tr.Latest()
	require.True(t, ok)
	require.Equal(t, "seed-1", latest.ID)

	_, err := tr.Start([]string{"new.csv"})
	require.NoError(t, err)
	sched.fire(0)

	latest, ok = tr.Latest()
	require.True(t, ok)
	require.Equal(t, "seed-1", latest.ID)
}

func TestLatestWithoutCompletedUploads(t *testing.T) {
	tr, _, _ := newTestTracker(KeyByID, nil)
	_, err := tr.Start([]string{"new.csv"})
	require.NoError(t, err)

	_, ok := tr.Latest()
	require.False(t, ok)
}

func TestFailIsOnlyManual(t *testing.T) {
	tr, sched, _ := newTestTracker(KeyByID, nil)
	started, err := tr.Start([]string{"a.csv"})
	require.NoError(t, err)
	sched.fire(0)
	for _, f := range tr.List() {
		require.NotEqual(t, models.UploadError, f.Status)
	}

	require.NoError(t, tr.Fail(started[0].ID))
	require.Equal(t, models.UploadError, tr.List()[0].Status)

	require.ErrorIs(t, tr.Fail("missing"), ErrUnknownUpload)
}

func TestSeedIsCopied(t *testing.T) {
	seed := []models.UploadedFile{{ID: "s", Name: "x.csv", Status: models.UploadCompleted}}
	tr, _, _ := newTestTracker(KeyByID, seed)
	seed[0].Name = "changed.csv"
	require.Equal(t, "x.csv", tr.List()[0].Name)
}

func TestParseKeyMode(t *testing.T) {
	m, err := ParseKeyMode("")
	require.NoError(t, err)
	require.Equal(t, KeyByID, m)

	m, err = ParseKeyMode("NAME")
	require.NoError(t, err)
	require.Equal(t, KeyByName, m)

	_, err = ParseKeyMode("hash")
	require.ErrorIs(t, err, ErrInvalidInput)
}
