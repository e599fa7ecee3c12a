package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/handiism/overdrive-dl/internal/audio"
	"github.com/handiism/overdrive-dl/internal/config"
	httpx "github.com/handiism/overdrive-dl/internal/http"
	ioutils "github.com/handiism/overdrive-dl/internal/io"
	"github.com/handiism/overdrive-dl/internal/license"
	"github.com/handiism/overdrive-dl/internal/model"
	"github.com/handiism/overdrive-dl/internal/odm"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update shown to the user.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Options are the per-run switches from the command line.
type Options struct {
	// UpdateTags rewrites ID3 tags after downloading (--tags).
	UpdateTags bool

	// UpdateOwner chowns the downloaded files (--owner).
	UpdateOwner bool

	// SkipDownload runs only the tag/owner updates, assuming the files
	// already exist (--skip-download).
	SkipDownload bool

	// Force re-downloads files that already exist (--force).
	Force bool

	// ShowProgressBar renders a per-part byte progress bar on stderr.
	ShowProgressBar bool
}

// Manager coordinates one audiobook download from a .odm file.
//
// The flow is strictly sequential: parse manifest, acquire license,
// download cover, download each part in manifest order, then apply the
// optional tag and ownership updates.
type Manager struct {
	settings   *config.Settings
	options    Options
	httpClient *httpx.Client
	parser     *odm.Parser
	acquirer   *license.Acquirer
	tagger     *audio.Tagger
	images     *ioutils.ImageService
	logger     *zap.SugaredLogger

	manifest *odm.Manifest
	book     *model.Book

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager.
//
// logger may be nil for a silent manager; onProgress may be nil to
// drop user-facing progress messages.
func NewManager(settings *config.Settings, options Options, logger *zap.SugaredLogger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	client := httpx.NewClient()
	acquirer := license.NewAcquirer(client, logger)
	if settings.ClientIDPath != "" {
		acquirer.ClientIDPath = settings.ClientIDPath
	}

	return &Manager{
		settings:   settings,
		options:    options,
		httpClient: client,
		parser:     odm.NewParser(),
		acquirer:   acquirer,
		tagger:     audio.NewTagger(settings.Tags),
		images:     ioutils.NewImageService(),
		logger:     logger,
		onProgress: onProgress,
	}
}

// Initialize parses the manifest and computes the book's target paths.
// No network traffic happens here.
func (m *Manager) Initialize(odmPath string) error {
	manifest, err := m.parser.ParseFile(odmPath)
	if err != nil {
		return err
	}

	m.manifest = manifest
	m.book = manifest.ToBook(m.settings.ToPathConfig(), m.settings.ToPartConfig())

	m.logger.Debugf("parsed %s: %q by %q, %d parts", odmPath, manifest.Title, manifest.Author, len(manifest.Parts))
	m.logger.Debugf("will save files to %s", m.book.Path)

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("%s by %s (%d parts)", manifest.Title, manifest.Author, len(manifest.Parts)),
		Level:   LevelInfo,
	})

	return nil
}

// Manifest returns the parsed manifest. Only valid after Initialize.
func (m *Manager) Manifest() *odm.Manifest {
	return m.manifest
}

// Book returns the book with computed paths. Only valid after Initialize.
func (m *Manager) Book() *model.Book {
	return m.book
}

// Run performs the work selected by the options: the download flow, or
// only the tag/owner updates when SkipDownload is set.
func (m *Manager) Run(ctx context.Context) error {
	if m.options.SkipDownload {
		if err := m.verifyExistingFiles(); err != nil {
			return err
		}
	} else if err := m.download(ctx); err != nil {
		return err
	}

	if m.options.UpdateTags {
		if err := m.updateTags(); err != nil {
			return err
		}
	}

	if m.options.UpdateOwner {
		if err := m.updateOwner(); err != nil {
			return err
		}
	}

	return nil
}

// download fetches the cover and all parts, in manifest order.
func (m *Manager) download(ctx context.Context) error {
	book := m.book

	if err := ioutils.EnsureDir(book.Path); err != nil {
		return err
	}

	lic, clientID, err := m.acquirer.License(ctx, m.manifest)
	if err != nil {
		return err
	}
	m.logger.Debugf("using ClientID %s", clientID)

	if book.HasCover() {
		if err := m.downloadCover(ctx); err != nil {
			// A missing cover should not kill the audio download.
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not download cover: %v", err), Level: LevelWarning})
		}
	}

	headers := map[string]string{
		"License":  lic,
		"ClientID": clientID,
	}

	for _, part := range book.Parts {
		if !m.options.Force && ioutils.FileExists(part.Path, part.FileSize) {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("%s already exists with expected size, skipping", filepath.Base(part.Path)),
				Level:   LevelInfo,
			})
			continue
		}

		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Downloading %s (%d of %d)", part.Name, part.Number, len(book.Parts)),
			Level:   LevelInfo,
		})
		m.logger.Debugf("part %d: url=%s size=%d duration=%s", part.Number, part.DownloadURL, part.FileSize, part.Duration)

		if err := m.downloadPart(ctx, part, headers); err != nil {
			return err
		}

		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Downloaded %s", filepath.Base(part.Path)),
			Level:   LevelVerbose,
		})
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Finished downloading %s", book.Title),
		Level:   LevelSuccess,
	})

	return nil
}

// downloadPart streams one part to disk, rendering a byte progress bar
// when enabled.
func (m *Manager) downloadPart(ctx context.Context, part *model.Part, headers map[string]string) error {
	var onProgress func(written, total int64)

	if m.options.ShowProgressBar {
		bar := progressbar.NewOptions64(part.FileSize,
			progressbar.OptionSetDescription(filepath.Base(part.Path)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer func() {
			_ = bar.Finish()
		}()
		onProgress = func(written, total int64) {
			_ = bar.Set64(written)
		}
	}

	return m.httpClient.DownloadFile(ctx, part.DownloadURL, part.Path, headers, onProgress)
}

// downloadCover fetches the cover art, honoring the same skip/force
// policy as parts. Covers have no manifest size, so any existing file
// counts.
func (m *Manager) downloadCover(ctx context.Context) error {
	book := m.book

	if !m.options.Force && ioutils.FileExists(book.CoverPath, -1) {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("%s already exists, skipping cover", filepath.Base(book.CoverPath)),
			Level:   LevelVerbose,
		})
		return nil
	}

	m.logger.Debugf("downloading cover image %s", book.CoverURL)

	artwork, err := m.httpClient.Get(ctx, book.CoverURL, map[string]string{
		"User-Agent": httpx.UserAgentLong,
	})
	if err != nil {
		return err
	}

	return ioutils.WriteFile(book.CoverPath, artwork)
}

// updateTags rewrites the ID3 tags of every part.
func (m *Manager) updateTags() error {
	m.progress(ProgressEvent{Message: "Updating ID3 tags", Level: LevelInfo})

	artwork, err := m.coverForTags()
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cover art not embedded: %v", err), Level: LevelWarning})
		artwork = nil
	}

	for _, part := range m.book.Parts {
		m.logger.Debugf("updating tags for %s", part.Path)
		if err := m.tagger.TagPart(part, artwork); err != nil {
			return err
		}
	}

	return nil
}

// coverForTags loads and prepares the saved cover for tag embedding.
// Returns nil bytes when embedding is disabled or no cover exists.
func (m *Manager) coverForTags() ([]byte, error) {
	if !m.settings.EmbedCoverInTags || m.book.CoverPath == "" {
		return nil, nil
	}

	artwork, err := os.ReadFile(m.book.CoverPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if m.settings.CoverMaxSize > 0 {
		if resized, err := m.images.Resize(artwork, m.settings.CoverMaxSize); err == nil {
			artwork = resized
		}
	}
	if m.settings.ConvertCoverToJPG {
		if converted, err := m.images.ConvertToJPEG(artwork); err == nil {
			artwork = converted
		}
	}

	return artwork, nil
}

// updateOwner chowns the author directory, the book directory, every
// part and the cover.
func (m *Manager) updateOwner() error {
	m.progress(ProgressEvent{Message: "Updating file owner", Level: LevelInfo})

	owner := ioutils.LookupOwner(m.settings.Owner.User, m.settings.Owner.Group)
	if owner.IsNoop() {
		m.progress(ProgressEvent{Message: "No resolvable owner configured, nothing to change", Level: LevelWarning})
		return nil
	}

	paths := []string{m.book.AuthorDir(), m.book.Path}
	for _, part := range m.book.Parts {
		paths = append(paths, part.Path)
	}
	if m.book.CoverPath != "" && ioutils.FileExists(m.book.CoverPath, -1) {
		paths = append(paths, m.book.CoverPath)
	}

	for _, path := range paths {
		m.logger.Debugf("chown %s", path)
		if err := ioutils.Chown(path, owner); err != nil {
			return err
		}
	}

	return nil
}

// verifyExistingFiles checks that the files a --skip-download run wants
// to modify are actually there.
func (m *Manager) verifyExistingFiles() error {
	if info, err := os.Stat(m.book.Path); err != nil || !info.IsDir() {
		return &ioutils.FileSystemError{Op: "expected directory", Path: m.book.Path}
	}
	for _, part := range m.book.Parts {
		if !ioutils.FileExists(part.Path, -1) {
			return &ioutils.FileSystemError{Op: "expected file", Path: part.Path}
		}
	}
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
