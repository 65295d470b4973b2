package catalog

import "ProductAPI/pkg/kit"

type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Store holds committed products. Creation is asynchronous: SubmitCreate only
// reports whether the insert was queued, and the product shows up in All/Find
// once a worker has committed it.
type Store interface {
	All() []Product
	Find(id int64) (Product, bool)
	Delete(id int64)
	ExistsByName(name string) bool
	SubmitCreate(name string) error
}

// Submitter is the slice of kit.WorkerPool the store needs.
type Submitter interface {
	Submit(t kit.Task) error
}
