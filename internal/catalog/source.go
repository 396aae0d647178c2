package catalog

import "context"

// Source supplies the records a catalog is built from.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

type FileSource struct {
	Path string
}

func (f FileSource) Records(context.Context) ([]Record, error) {
	return ReadFile(f.Path)
}
