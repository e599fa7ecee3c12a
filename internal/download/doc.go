// Package download provides the orchestration logic for fetching an
// audiobook described by a .odm manifest.
//
// # Manager
//
// The Manager runs the whole flow for one book:
//
//  1. Parse the .odm manifest
//  2. Acquire (or reuse) the download license
//  3. Download cover art
//  4. Download each audio part sequentially, in manifest order
//  5. Rewrite ID3 tags (optional)
//  6. Change file ownership (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, options, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize("book.odm"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sequencing
//
// Downloads are sequential and blocking: one part at a time, in the
// order the manifest declares. A failed part aborts the run; re-running
// the tool resumes, because parts already on disk with the expected
// size are skipped (unless Options.Force is set).
//
// # Progress
//
// User-facing progress is reported through the ProgressEvent callback;
// per-part byte progress renders as a progress bar on stderr when
// Options.ShowProgressBar is set. Diagnostic detail goes to the zap
// logger at debug level.
package download
