package batch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/DreamCats/meshedges/internal/export"
	"github.com/DreamCats/meshedges/internal/mesh"
	"github.com/DreamCats/meshedges/internal/progress"
)

// Job is one source file to export, relative to the batch root
type Job struct {
	Root string
	Rel  string
}

// Source returns the absolute source path
func (j Job) Source() string {
	return filepath.Join(j.Root, filepath.FromSlash(j.Rel))
}

// Target returns the CSV path for this job under outDir
func (j Job) Target(outDir string) string {
	return filepath.Join(outDir, filepath.FromSlash(j.Rel)+".csv")
}

// Loader reads the mesh for a source path
type Loader func(path string) (*mesh.Mesh, error)

// FileResult is the outcome of one job
type FileResult struct {
	Job    Job
	Target string
	Result export.Result
}

// Plan resolves pattern under root and drops paths matching any exclude pattern.
// Exclude patterns are matched against the relative path and the base name.
func Plan(root, pattern string, exclude []string) ([]Job, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %q in %s: %w", pattern, root, err)
	}

	jobs := make([]Job, 0, len(matches))
	for _, rel := range matches {
		if excluded(rel, exclude) {
			log.Printf("Source excluded: path=%s", rel)
			continue
		}
		jobs = append(jobs, Job{Root: root, Rel: rel})
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].Rel < jobs[k].Rel })
	return jobs, nil
}

func excluded(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// Run exports every job in order and stops at the first failure.
// Results for jobs completed before the failure are returned with the error.
// reporter, when non-nil, advances once per finished file.
func Run(jobs []Job, load Loader, exporter *export.Exporter, outDir string, reporter progress.Reporter) ([]FileResult, error) {
	if reporter != nil {
		reporter.Start(len(jobs))
		defer reporter.Finish()
	}

	results := make([]FileResult, 0, len(jobs))
	for _, job := range jobs {
		m, err := load(job.Source())
		if err != nil {
			return results, fmt.Errorf("load %s: %w", job.Rel, err)
		}

		target := job.Target(outDir)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return results, fmt.Errorf("failed to create output directory: %w", err)
		}

		res, err := exporter.Export(m, target)
		if err != nil {
			return results, fmt.Errorf("export %s: %w", job.Rel, err)
		}
		log.Printf("Exported mesh: source=%s target=%s rows=%d skipped=%d", job.Rel, target, res.Rows, res.Skipped)
		results = append(results, FileResult{Job: job, Target: target, Result: res})
		if reporter != nil {
			reporter.Increment()
		}
	}
	return results, nil
}
