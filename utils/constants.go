// File: utils/constants.go
package utils

import "time"

// SlotCachePrefix is the prefix used for cached per-date slot listings.
const SlotCachePrefix = "slots:"

// SlotCacheTTL is the time-to-live for slot listing cache entries. Listings
// are also invalidated explicitly on every slot mutation, so this only bounds
// staleness across instances.
const SlotCacheTTL = 30 * time.Second
