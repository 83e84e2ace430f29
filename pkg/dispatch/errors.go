package dispatch

// dispatch's Option set has no numeric parameter that can be out of range
// the way the teacher's cache.New validates capacity/ttl/shard-count:
// pool chunk sizes fall back to selpool's own default for any value <= 0,
// and every hook/resolver Option silently keeps the previous value when
// passed nil. There is consequently nothing for NewRuntime to reject, so
// unlike cache.New it returns *Runtime directly rather than (*Runtime, error).
