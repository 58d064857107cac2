package models

// Lifecycle is the deletion state of a single product row.
type Lifecycle int

const (
	// LifecycleGone means the row does not exist (never created or force deleted).
	LifecycleGone Lifecycle = iota
	// LifecycleActive means the row exists and deleted_at is null.
	LifecycleActive
	// LifecycleDeleted means the row exists and deleted_at is set.
	LifecycleDeleted
)

// LifecycleOf derives the lifecycle of p. A nil product is Gone.
func LifecycleOf(p *Product) Lifecycle {
	switch {
	case p == nil:
		return LifecycleGone
	case p.Trashed():
		return LifecycleDeleted
	default:
		return LifecycleActive
	}
}

func (l Lifecycle) String() string {
	switch l {
	case LifecycleActive:
		return "active"
	case LifecycleDeleted:
		return "deleted"
	default:
		return "gone"
	}
}

// SoftDelete checks the Active -> Deleted transition.
func (l Lifecycle) SoftDelete() error {
	switch l {
	case LifecycleActive:
		return nil
	case LifecycleDeleted:
		return ErrProductAlreadyDeleted
	default:
		return ErrProductNotFound
	}
}

// Restore checks the Deleted -> Active transition.
func (l Lifecycle) Restore() error {
	switch l {
	case LifecycleDeleted:
		return nil
	case LifecycleActive:
		return ErrProductNotDeleted
	default:
		return ErrProductNotFound
	}
}

// ForceDelete checks the Active|Deleted -> Gone transition.
func (l Lifecycle) ForceDelete() error {
	if l == LifecycleGone {
		return ErrProductNotFound
	}
	return nil
}
