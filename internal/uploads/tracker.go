// Package uploads tracks files picked in the patient portal from the moment
// they are selected until their simulated analysis completes.
package uploads

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"neurowatch/internal/models"
	"neurowatch/internal/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput         = errors.New("invalid upload input")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrDuplicateUploadKey   = errors.New("duplicate upload key")
	ErrUnknownUpload        = errors.New("unknown upload")
)

// KeyMode decides how a finished analysis finds the record it belongs to.
type KeyMode string

const (
	// KeyByID matches the upload id assigned when the file was picked.
	KeyByID KeyMode = "id"
	// KeyByName matches every record with the same file name. Two uploads of
	// the same name race and whichever completion fires last wins.
	KeyByName KeyMode = "name"
)

func ParseKeyMode(s string) (KeyMode, error) {
	switch m := KeyMode(strings.ToLower(strings.TrimSpace(s))); m {
	case KeyByID, KeyByName:
		return m, nil
	case "":
		return KeyByID, nil
	default:
		return "", fmt.Errorf("%w: completion key %q", ErrInvalidInput, s)
	}
}

// Scorer assigns the risk score of a finished analysis.
type Scorer interface {
	Score() int
}

// Options configures a Tracker.
type Options struct {
	Delay             time.Duration
	AllowedExtensions []string
	KeyMode           KeyMode
	Scorer            Scorer
	Scheduler         services.Scheduler
	// OnComplete is called outside the tracker lock for every record that completes.
	OnComplete func(models.UploadedFile)
	// Now defaults to time.Now.
	Now func() time.Time
}

// Tracker owns the upload history of one workspace.
type Tracker struct {
	mu    sync.Mutex
	files []models.UploadedFile
	opts  Options
	log   *zap.Logger
}

// NewTracker returns a tracker whose history starts with seed.
func NewTracker(log *zap.Logger, seed []models.UploadedFile, opts Options) *Tracker {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.KeyMode == "" {
		opts.KeyMode = KeyByID
	}
	files := make([]models.UploadedFile, len(seed))
	copy(files, seed)
	return &Tracker{files: files, opts: opts, log: log}
}

// Start records one processing entry per name, in order, and schedules the
// completion of each. Names are validated up front so a bad name in the batch
// leaves the history untouched.
func (t *Tracker) Start(names []string) ([]models.UploadedFile, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no files selected", ErrInvalidInput)
	}

	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = filepath.Base(strings.TrimSpace(name))
		if name == "" || name == "." || name == string(filepath.Separator) {
			return nil, fmt.Errorf("%w: empty file name", ErrInvalidInput)
		}
		if !t.allowed(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, name)
		}
		cleaned = append(cleaned, name)
	}

	today := t.opts.Now().UTC().Truncate(24 * time.Hour)
	started := make([]models.UploadedFile, 0, len(cleaned))

	t.mu.Lock()
	for _, name := range cleaned {
		if t.opts.KeyMode == KeyByName && t.processingLocked(name) {
			t.log.Warn("Upload shares a name with one still processing; completions will race",
				zap.String("file", name),
				zap.Error(ErrDuplicateUploadKey),
			)
		}
		record := models.UploadedFile{
			ID:         uuid.NewString(),
			Name:       name,
			UploadDate: today,
			Status:     models.UploadProcessing,
		}
		t.files = append(t.files, record)
		started = append(started, record)
	}
	t.mu.Unlock()

	for _, record := range started {
		t.opts.Scheduler.After(t.opts.Delay, func() { t.complete(record) })
		t.log.Debug("Upload processing started",
			zap.String("upload_id", record.ID),
			zap.String("file", record.Name),
			zap.Duration("delay", t.opts.Delay),
		)
	}
	return started, nil
}

func (t *Tracker) complete(started models.UploadedFile) {
	var done []models.UploadedFile

	t.mu.Lock()
	for i, f := range t.files {
		if !t.matches(f, started) {
			continue
		}
		t.files[i] = f.WithScore(t.opts.Scorer.Score())
		done = append(done, t.files[i])
	}
	t.mu.Unlock()

	if len(done) == 0 {
		t.log.Warn("Completion matched no upload", zap.String("upload_id", started.ID))
	}
	for _, f := range done {
		if t.opts.OnComplete != nil {
			t.opts.OnComplete(f)
		}
	}
}

func (t *Tracker) matches(f, started models.UploadedFile) bool {
	if t.opts.KeyMode == KeyByName {
		return f.Name == started.Name
	}
	return f.ID == started.ID
}

// Fail marks an upload as errored. No automatic path calls this; it exists
// for operators and future processing backends.
func (t *Tracker) Fail(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.files {
		if t.files[i].ID == id {
			t.files[i].Status = models.UploadError
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownUpload, id)
}

// List returns the history in upload order.
func (t *Tracker) List() []models.UploadedFile {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.UploadedFile, len(t.files))
	copy(out, t.files)
	return out
}

// Latest returns the first completed record in history order, which is the
// one the portal's "Latest Analysis" card shows.
func (t *Tracker) Latest() (models.UploadedFile, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range t.files {
		if f.Status == models.UploadCompleted {
			return f, true
		}
	}
	return models.UploadedFile{}, false
}

// Processing reports whether any upload is still waiting on its analysis.
func (t *Tracker) Processing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range t.files {
		if f.Status == models.UploadProcessing {
			return true
		}
	}
	return false
}

func (t *Tracker) processingLocked(name string) bool {
	for _, f := range t.files {
		if f.Name == name && f.Status == models.UploadProcessing {
			return true
		}
	}
	return false
}

func (t *Tracker) allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range t.opts.AllowedExtensions {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}
