package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

//go:embed default.json
var defaultJSON []byte

// Record is one photograph as stored in a dataset file.
type Record struct {
	Image  string  `json:"image"`
	Height float64 `json:"height"`
	ID     string  `json:"id,omitempty"`
}

type document struct {
	Items []Record `json:"items"`
}

// Default returns the built-in dataset.
func Default() []Record {
	recs, err := Read(bytes.NewReader(defaultJSON))
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded default is invalid: %v", err))
	}
	return recs
}

// Read decodes a dataset from r. It does not validate the records; use
// [Items] for that. Read does not close r.
func Read(r io.Reader) ([]Record, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode dataset")
	}
	return doc.Items, nil
}

// Load reads the dataset file at path. An empty path returns [Default].
func Load(path string) ([]Record, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Write encodes records as an indented dataset document.
// The output can be read back with [Read].
func Write(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Items: recs}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Save writes records to a file at path.
func Save(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ItemID returns the identifier of r: its explicit id, or a UUID derived
// from the image reference.
func ItemID(r Record) string {
	if r.ID != "" {
		return r.ID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(r.Image)).String()
}

// Items validates records and converts them into layout items, preserving
// their order. All problems are reported together as an INVALID_INPUT
// validation error.
func Items(recs []Record) ([]masonry.Item, error) {
	v := &errors.ValidationError{Code: errors.ErrCodeInvalidInput}
	items := make([]masonry.Item, 0, len(recs))
	seen := make(map[string]int, len(recs))

	for i, r := range recs {
		field := fmt.Sprintf("items[%d]", i)
		if err := errors.ValidateImageRef(r.Image); err != nil {
			v.Add(field+".image", "%s", errors.UserMessage(err))
		}
		if !(r.Height > 0) {
			v.Add(field+".height", "must be positive, got %v", r.Height)
		}
		id := ItemID(r)
		if j, dup := seen[id]; dup {
			v.Add(field+".id", "duplicate id %q (also items[%d])", id, j)
			continue
		}
		seen[id] = i
		items = append(items, masonry.Item{ID: id, Image: r.Image, NaturalHeight: r.Height})
	}

	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	return items, nil
}

// IDs returns the item ids in order.
func IDs(items []masonry.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
