package storage

type (
	WalkFunc func(key, value []byte) (bool, error)

	// WalkOption controls `Walk`.
	//
	// `Cursor` is the first key visited (inclusive); an empty cursor starts
	// from the first key of the prefix, or the last one with `Reverse`.
	// `Limit` 0 means no limit.
	WalkOption struct {
		Cursor  string
		Limit   uint64
		Reverse bool
	}
)

func NewWalkOption(cursor string, limit uint64, reverse bool) *WalkOption {
	o := &WalkOption{
		Cursor:  cursor,
		Limit:   limit,
		Reverse: reverse,
	}
	return o
}
