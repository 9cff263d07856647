package upload

import (
	"context"
	"log/slog"

	"github.com/seo-rii/tiptap/document"
)

// Job is one pending image upload. A job is created on the event loop,
// Run may block on any goroutine and the returned Result is applied back on
// the event loop.
type Job struct {
	File     File
	Skeleton *Skeleton
	// Pos is where the image goes when no placeholder could be inserted.
	Pos int
}

// Result is the outcome of a Job.
type Result struct {
	Job Job
	Src string
	Err error
}

// DropImages inserts an image placeholder for every image among files and
// returns the uploads to run. It inserts at pos, or at the selection when
// pos is nil. Files that are not images are skipped; no jobs means the drop
// was not handled.
func DropImages(st *document.State, pos *int, files []File) []Job {
	var jobs []Job
	for _, f := range files {
		if !f.IsImage() {
			continue
		}
		at := st.Selection().From()
		if pos != nil {
			at = *pos
		}
		sk := InsertSkeleton(st, SkeletonOptions{Kind: KindImage, Height: DefaultHeight(KindImage), At: pos})
		jobs = append(jobs, Job{File: f, Skeleton: sk, Pos: at})
	}
	return jobs
}

// Run uploads the job file.
func (j Job) Run(ctx context.Context, up Uploader) Result {
	src, err := up.Upload(ctx, j.File)
	return Result{Job: j, Src: src, Err: err}
}

// Apply puts the uploaded image in place of the placeholder, or drops the
// placeholder when the upload failed. It reports whether the document
// changed.
func (r Result) Apply(st *document.State) bool {
	if r.Err != nil {
		slog.Warn("Image upload failed", "file", r.Job.File.Name, "error", r.Err)
		return r.Job.Skeleton.Remove()
	}
	img := st.Schema().Node("image", document.Attrs{"src": r.Src})
	if r.Job.Skeleton.Exists() {
		return r.Job.Skeleton.ReplaceWith(img, true)
	}
	if r.Job.Skeleton != nil {
		// The placeholder was deleted while the upload ran.
		return false
	}
	return st.Dispatch(st.Tx().InsertBlocks(r.Job.Pos, img))
}
