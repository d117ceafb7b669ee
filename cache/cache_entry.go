package cache

import "time"
import "sync/atomic"

import "github.com/tinne26/texfont/glyph"

// A cached bitmap with additional information to estimate how
// much the entry is being used.
type cachedBitmapEntry struct {
	Bitmap *glyph.CharBitmap // Read-only.
	ByteSize uint32 // Read-only.
	CreationInstant uint32 // see cacheEntryInstant(). Read-only.
	accessCount uint32 // number of times the entry has been accessed
}

// Must be called after accessing an entry in order to keep the
// Hotness() heuristic making sense. Concurrent-safe.
func (self *cachedBitmapEntry) IncreaseAccessCount() {
	atomic.AddUint32(&self.accessCount, 1)
}

// A measure of "bytes accessed per time". Coldest entries
// (smallest values) are candidates for eviction. Concurrent-safe.
func (self *cachedBitmapEntry) Hotness(instant uint32) uint32 {
	const ConstEvictionCost = 1000 // additional threshold and pad
	bytesHit := self.ByteSize*atomic.LoadUint32(&self.accessCount)
	elapsed  := instant - self.CreationInstant
	if elapsed == 0 { elapsed = 1 }
	return (ConstEvictionCost + bytesHit)/elapsed
}

var cacheEpoch = time.Now()

// Lets tests move time forward without sleeping.
var testInstantNanosHack int64

// A time instant derived from the monotonic clock, downscaled to
// units of roughly 134ms.
func cacheEntryInstant() uint32 {
	return uint32((int64(time.Since(cacheEpoch)) + testInstantNanosHack) >> 27)
}

// Returns the approximate memory used by a bitmap.
func BitmapByteSize(bitmap *glyph.CharBitmap) uint32 {
	const EntryOverhead = 96 // struct fields, image header, map slot
	if bitmap == nil || bitmap.Image == nil { return EntryOverhead }
	return uint32(len(bitmap.Image.Pix)) + EntryOverhead
}

func newCachedBitmapEntry(bitmap *glyph.CharBitmap) (*cachedBitmapEntry, uint32) {
	instant := cacheEntryInstant()
	return &cachedBitmapEntry {
		Bitmap: bitmap,
		ByteSize: BitmapByteSize(bitmap),
		CreationInstant: instant,
		accessCount: 1,
	}, instant
}
