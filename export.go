package readmeta

import "context"

// ChapterExporter writes chapters out of the index. Saved chapters become
// visible only after Commit; Abort discards them.
type ChapterExporter interface {
	Save(ctx context.Context, chapter *Chapter) error
	Commit() error
	Abort() error
}
