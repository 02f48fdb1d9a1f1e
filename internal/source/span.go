package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file. Diagnostics
// and IR nodes carry spans; FileSet.Resolve turns them into positions.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
