package dataset

import "fmt"

// Feature column names emitted by [Pack.Unpack].
const (
	ColumnIDLeft    = "id_left"
	ColumnTextLeft  = "text_left"
	ColumnIDRight   = "id_right"
	ColumnTextRight = "text_right"
)

// Instance is one labeled paired-text example, e.g. a query/document pair
// with a relevance or class label.
type Instance struct {
	IDLeft    string
	TextLeft  string
	IDRight   string
	TextRight string
	Label     float64
}

// Pack is an in-memory [Dataset] of paired-text instances.
type Pack struct {
	instances []Instance
}

func NewPack(instances []Instance) *Pack {
	return &Pack{instances: instances}
}

func (p *Pack) Len() int {
	return len(p.instances)
}

func (p *Pack) Select(indices []int) (Dataset, error) {
	subset := make([]Instance, len(indices))
	for i, index := range indices {
		if index < 0 || index >= len(p.instances) {
			return nil, fmt.Errorf("instance index %d out of bounds for pack of %d", index, len(p.instances))
		}
		subset[i] = p.instances[index]
	}
	return NewPack(subset), nil
}

func (p *Pack) Unpack() (Batch, error) {
	features := map[string][]any{
		ColumnIDLeft:    make([]any, 0, len(p.instances)),
		ColumnTextLeft:  make([]any, 0, len(p.instances)),
		ColumnIDRight:   make([]any, 0, len(p.instances)),
		ColumnTextRight: make([]any, 0, len(p.instances)),
	}

	labels := make([]float64, 0, len(p.instances))
	for _, instance := range p.instances {
		features[ColumnIDLeft] = append(features[ColumnIDLeft], instance.IDLeft)
		features[ColumnTextLeft] = append(features[ColumnTextLeft], instance.TextLeft)
		features[ColumnIDRight] = append(features[ColumnIDRight], instance.IDRight)
		features[ColumnTextRight] = append(features[ColumnTextRight], instance.TextRight)
		labels = append(labels, instance.Label)
	}

	return Batch{Features: features, Labels: labels}, nil
}
