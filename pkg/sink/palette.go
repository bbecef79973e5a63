package sink

import (
	"hash/fnv"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

var palette = []string{
	"#8ecae6", "#219ebc", "#ffb703", "#fb8500", "#90be6d",
	"#f94144", "#577590", "#43aa8b", "#f9c74f", "#b5838d",
}

const (
	backgroundColor = "#1d1d1d"
	labelColor      = "#ffffff"
)

// TileColor returns the palette colour for an item id.
func TileColor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Labels maps item ids to display labels, usually the image reference.
type Labels map[string]string

// LabelsOf builds labels from the image references of items.
func LabelsOf(items []masonry.Item) Labels {
	l := make(Labels, len(items))
	for _, it := range items {
		l[it.ID] = it.Image
	}
	return l
}

func (l Labels) of(id string) string {
	if s, ok := l[id]; ok && s != "" {
		return s
	}
	return id
}
