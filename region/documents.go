package region

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/nbt/codec"
)

// ReadDocuments parses a region file and decodes every occupied chunk. Empty slots are
// absent from the result.
func ReadDocuments(data []byte, opts ...Option) (map[Pos]*codec.Document, error) {
	r, err := Read(data, opts...)
	if err != nil {
		return nil, err
	}

	docs := make(map[Pos]*codec.Document, r.Len())
	for pos, c := range r.All() {
		doc, err := c.Document(r.cfg.codecOpts...)
		if err != nil {
			if r.cfg.skipCorrupt {
				r.cfg.logger.Warn("skipping undecodable chunk",
					slog.String("pos", pos.String()),
					slog.Any("error", err),
				)
				continue
			}

			return nil, err
		}
		docs[pos] = doc
	}

	return docs, nil
}

// WriteDocuments builds a region file holding docs. Every chunk is compressed with the
// configured scheme and stamped with the current time.
func WriteDocuments(docs map[Pos]*codec.Document, opts ...Option) ([]byte, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}

	for pos, doc := range docs {
		if err := r.SetDocument(pos.X, pos.Z, doc); err != nil {
			return nil, fmt.Errorf("write documents: %w", err)
		}
	}

	return r.Write()
}
