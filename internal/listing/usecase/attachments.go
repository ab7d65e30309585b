package usecase

import (
	"sync"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

// DraftAttachments is the bounded, ordered set of photo references collected
// while the add-listing form is open. Capacity is domain.MaxListingPhotos;
// order reflects attachment order.
type DraftAttachments struct {
	mu   sync.Mutex
	refs []domain.PhotoRef
}

func NewDraftAttachments() *DraftAttachments {
	return &DraftAttachments{}
}

// Add appends a reference and returns the resulting sequence.
func (d *DraftAttachments) Add(ref domain.PhotoRef) ([]domain.PhotoRef, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.refs) >= domain.MaxListingPhotos {
		return nil, domain.ErrPhotoLimitExceeded
	}
	d.refs = append(d.refs, ref)
	return d.snapshot(), nil
}

// RemoveAt drops the reference at index i; later references shift down by one.
func (d *DraftAttachments) RemoveAt(i int) ([]domain.PhotoRef, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.refs) {
		return nil, domain.ErrPhotoIndexOutOfRange
	}
	d.refs = append(d.refs[:i], d.refs[i+1:]...)
	return d.snapshot(), nil
}

// Clear empties the collection. Clearing an empty collection is a no-op.
func (d *DraftAttachments) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refs = nil
}

// Refs returns a copy of the current sequence.
func (d *DraftAttachments) Refs() []domain.PhotoRef {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

func (d *DraftAttachments) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.refs)
}

func (d *DraftAttachments) snapshot() []domain.PhotoRef {
	out := make([]domain.PhotoRef, len(d.refs))
	copy(out, d.refs)
	return out
}
