package region

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/nbt/codec"
)

// DecodeAll decodes every occupied chunk with at most workers goroutines and returns
// the documents by position. workers <= 0 uses GOMAXPROCS.
//
// Each chunk is decoded with the region's codec options and cached on its Chunk, as
// Chunk.Document does. Cancelling ctx stops the work at the next chunk boundary; the
// first decode error or ctx.Err() is returned and the partial result is discarded.
func (r *Region) DecodeAll(ctx context.Context, workers int) (map[Pos]*codec.Document, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu   sync.Mutex
		docs = make(map[Pos]*codec.Document, r.count)
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for pos, c := range r.All() {
		if gctx.Err() != nil {
			break
		}

		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := c.Document(r.cfg.codecOpts...)
			if err != nil {
				return err
			}

			mu.Lock()
			docs[pos] = doc
			mu.Unlock()

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.cfg.logger.Debug("region decoded", slog.Int("chunks", len(docs)), slog.Int("workers", workers))

	return docs, nil
}
