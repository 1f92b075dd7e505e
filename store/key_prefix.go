package store

// Declare database key prefix for objects
const (
	PrefixBlock     = "blk:"
	PrefixBlockMeta = "blk_meta:"
	PrefixTx        = "tx:"

	BlockMetaKeyLatestHeight = "latest_height"
)
