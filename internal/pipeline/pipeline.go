package pipeline

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"

	"github.com/jhon-crow/ymmod/internal/extract"
	"github.com/jhon-crow/ymmod/internal/patch"
	"github.com/jhon-crow/ymmod/internal/update"
)

// ErrResourceArchiveMissing means the unpacked installer has no
// resources/app.asar, so there is no application to patch.
var ErrResourceArchiveMissing = errors.New("app.asar not found in extracted installer")

// Downloader fetches one build's installer to a local path.
type Downloader interface {
	Download(ctx context.Context, build *update.Build, destPath string) error
}

// Extractor unpacks an archive of the given kind into a directory.
type Extractor interface {
	Extract(ctx context.Context, kind extract.Kind, inputPath, outputDir string) error
}

// ProgressFunc observes run progress. Percent values follow the fixed stage
// curve and always end at 100 on success.
type ProgressFunc func(percent int, message string)

// Pipeline runs the full download-extract-patch sequence for one build.
type Pipeline struct {
	outputRoot string
	downloader Downloader
	extractor  Extractor
	engine     *patch.Engine
	patchOpts  patch.Options
	logger     Logger
	progress   ProgressFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for run progress and stage diagnostics.
func WithLogger(logger Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProgress sets an observer for the stage percent curve.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithPatchOptions tunes the patch rule table applied to the copied sources.
func WithPatchOptions(opts patch.Options) Option {
	return func(p *Pipeline) {
		p.patchOpts = opts
	}
}

// New creates a pipeline writing build directories under outputRoot.
func New(outputRoot string, downloader Downloader, extractor Extractor, opts ...Option) *Pipeline {
	p := &Pipeline{
		outputRoot: outputRoot,
		downloader: downloader,
		extractor:  extractor,
		engine:     patch.NewEngine(),
		logger:     defaultLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every stage for one build and returns the patched application
// directory. A failure leaves the partially-built directory on disk; the
// next Run for the same version starts from a clean slate.
func (p *Pipeline) Run(ctx context.Context, build *update.Build) (string, error) {
	runID := uuid.New().String()
	layout := NewLayout(p.outputRoot, build.Version)

	p.logger.Info("starting build run",
		"run_id", runID, "version", build.Version, "build_dir", layout.BuildDir)

	if err := layout.Reset(); err != nil {
		return "", stageErr(StageDirectoriesPrepared, layout.BuildDir, err)
	}

	p.emit(5, "Downloading build...")
	p.logger.Info("downloading build", "run_id", runID, "path", build.Path)
	if err := p.downloader.Download(ctx, build, layout.InstallerPath); err != nil {
		return "", stageErr(StageDownloaded, layout.InstallerPath, err)
	}

	p.emit(20, "Extracting installer...")
	p.logger.Info("extracting installer", "run_id", runID, "output", layout.ExtractDir)
	if err := p.extractor.Extract(ctx, extract.KindInstaller, layout.InstallerPath, layout.ExtractDir); err != nil {
		return "", stageErr(StageInstallerExtracted, layout.InstallerPath, err)
	}

	p.emit(35, "Locating and extracting app.asar...")
	if _, err := os.Stat(layout.ResourcePath); err != nil {
		if os.IsNotExist(err) {
			err = ErrResourceArchiveMissing
		}
		return "", stageErr(StageResourceArchiveLocated, layout.ResourcePath, err)
	}
	p.copyIcon(runID, layout)

	p.logger.Info("extracting application archive", "run_id", runID, "output", layout.SourceDir)
	if err := p.extractor.Extract(ctx, extract.KindResource, layout.ResourcePath, layout.SourceDir); err != nil {
		return "", stageErr(StageResourceArchiveExtracted, layout.ResourcePath, err)
	}

	p.emit(45, "Cleaning up temp files...")
	if err := os.RemoveAll(layout.TempDir); err != nil {
		return "", stageErr(StageTempCleaned, layout.TempDir, err)
	}

	p.emit(50, "Copying sources...")
	p.logger.Info("copying sources", "run_id", runID, "output", layout.ModDir)
	if err := copyDir(layout.SourceDir, layout.ModDir); err != nil {
		return "", stageErr(StageSourceCopied, layout.ModDir, err)
	}

	p.emit(55, "Applying patches...")
	if err := p.applyRules(runID, StagePatchesApplied, layout.ModDir, patch.DefaultRules(p.patchOpts)); err != nil {
		return "", err
	}

	p.emit(80, "Creating mod files...")
	if err := patch.WriteAssets(layout.ModDir); err != nil {
		return "", stageErr(StageAssetsInjected, layout.ModDir, err)
	}

	p.emit(90, "Injecting mod into HTML...")
	if err := p.applyRules(runID, StageTreeRewritten, layout.ModDir, patch.HTMLRules()); err != nil {
		return "", err
	}

	p.emit(100, "Done!")
	p.logger.Info("build run complete", "run_id", runID, "mod_dir", layout.ModDir)
	return layout.ModDir, nil
}

// emit reports one point on the stage percent curve. The observer is
// optional.
func (p *Pipeline) emit(percent int, message string) {
	if p.progress != nil {
		p.progress(percent, message)
	}
}

func (p *Pipeline) applyRules(runID string, stage Stage, root string, rules []patch.Rule) error {
	outcomes, err := p.engine.Apply(root, rules)
	for _, outcome := range outcomes {
		if outcome.Status == patch.StatusSkipped {
			p.logger.Debug("patch target missing, skipped",
				"run_id", runID, "target", outcome.Target)
		}
	}
	if err != nil {
		return stageErr(stage, root, err)
	}
	return nil
}

// copyIcon carries the application icon out of the temp tree when the
// installer ships one. The icon is a nicety, so failures only warn.
func (p *Pipeline) copyIcon(runID string, layout Layout) {
	src := iconSourcePath(layout)
	if _, err := os.Stat(src); err != nil {
		return
	}
	if err := copyFile(src, layout.IconPath); err != nil {
		p.logger.Warn("could not copy application icon", "run_id", runID, "error", err)
		return
	}
	p.logger.Debug("copied application icon", "run_id", runID, "path", layout.IconPath)
}
