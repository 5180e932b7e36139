package dataset

// Batch is one materialized group of instances: named feature columns plus
// their labels. The batch generator treats contents as opaque.
type Batch struct {
	Features map[string][]any
	Labels   []float64
}

// Dataset is the collaborator the batch generator draws from. Implementations
// own storage and materialization; the generator only deals in indices.
type Dataset interface {
	Len() int
	// Select returns the subset of instances at the given indices, in order.
	Select(indices []int) (Dataset, error)
	// Unpack materializes the receiver into feature columns and labels.
	Unpack() (Batch, error)
}
