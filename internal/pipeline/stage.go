package pipeline

import "fmt"

// Stage identifies how far a run progressed. Stages advance strictly in the
// order they are declared.
type Stage string

const (
	StageInit                     Stage = "init"
	StageDirectoriesPrepared      Stage = "directories_prepared"
	StageDownloaded               Stage = "downloaded"
	StageInstallerExtracted       Stage = "installer_extracted"
	StageResourceArchiveLocated   Stage = "resource_archive_located"
	StageResourceArchiveExtracted Stage = "resource_archive_extracted"
	StageTempCleaned              Stage = "temp_cleaned"
	StageSourceCopied             Stage = "source_copied"
	StagePatchesApplied           Stage = "patches_applied"
	StageAssetsInjected           Stage = "assets_injected"
	StageTreeRewritten            Stage = "tree_rewritten"
	StageDone                     Stage = "done"
)

// StageError reports which stage a run died in. Stage is the stage that was
// being entered when the failure happened, Path the file or directory being
// worked on if one is relevant.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("stage %s (%s): %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, path string, err error) *StageError {
	return &StageError{Stage: stage, Path: path, Err: err}
}
