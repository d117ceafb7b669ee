package cache

import "sync"
import "sync/atomic"
import "hash/fnv"

import "github.com/tinne26/texfont/glyph"

// Identifies a rendered bitmap: font spec hash, pixel size and codepoint.
type Key [3]uint64

// Creates the cache key for the given font spec, size and codepoint.
func MakeKey(fontSpec string, sizePx int, codePoint rune) Key {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(fontSpec))
	return Key{ hasher.Sum64(), uint64(sizePx), uint64(codePoint) }
}

// A bitmap cache with memory bounds that uses random sampling for
// evicting entries. It is concurrent-safe, though not optimized for
// heavily concurrent scenarios.
//
// Cached bitmaps are shared, so they must be treated as read-only.
type BitmapCache struct {
	bitmaps map[Key]*cachedBitmapEntry
	spaceBytesLeft uint32
	lowestBytesLeft uint32
	byteSizeLimit uint32
	mutex sync.RWMutex
}

// Creates a new cache bounded by the given size. Negative values
// will panic.
func NewBitmapCache(maxByteSize int) *BitmapCache {
	if maxByteSize < 0 { panic("maxByteSize < 0") } // likely a dev mistake
	return &BitmapCache {
		bitmaps: make(map[Key]*cachedBitmapEntry, 128),
		spaceBytesLeft: uint32(maxByteSize),
		lowestBytesLeft: uint32(maxByteSize),
		byteSizeLimit: uint32(maxByteSize),
	}
}

// Attempts to remove the entry with the lowest eviction cost from a
// small pool of samples. May not remove anything in some cases.
//
// The returned value is the freed space, which must be manually
// added to spaceBytesLeft by the caller.
func (self *BitmapCache) removeRandEntry(hotness uint32, instant uint32) uint32 {
	const SampleSize = 10

	// map iteration order is already randomized
	self.mutex.RLock()
	var selectedKey Key
	lowestHotness := ^uint32(0)
	samplesTaken  := 0
	for key, entry := range self.bitmaps {
		currHotness := entry.Hotness(instant)
		if currHotness < lowestHotness {
			lowestHotness = currHotness
			selectedKey = key
		}
		samplesTaken += 1
		if samplesTaken >= SampleSize { break }
	}
	self.mutex.RUnlock()

	// delete selected entry, if any
	freedSpace := uint32(0)
	if lowestHotness < hotness {
		self.mutex.Lock()
		entry, stillExists := self.bitmaps[selectedKey]
		if stillExists {
			delete(self.bitmaps, selectedKey)
			freedSpace = entry.ByteSize
		}
		self.mutex.Unlock()
	}
	return freedSpace
}

// Stores the given bitmap with the given key. Bitmaps bigger than the
// whole cache are ignored, and if not enough room can be made by
// evicting colder entries, the bitmap is not stored either.
func (self *BitmapCache) Pass(key Key, bitmap *glyph.CharBitmap) {
	const MaxMakeRoomAttempts = 2

	self.mutex.RLock()
	_, alreadyExists := self.bitmaps[key]
	self.mutex.RUnlock()
	if alreadyExists { return }

	entry, instant := newCachedBitmapEntry(bitmap)
	if entry.ByteSize > atomic.LoadUint32(&self.byteSizeLimit) { return }
	spaceBytesLeft := atomic.LoadUint32(&self.spaceBytesLeft)
	freedSpace := uint32(0)
	if entry.ByteSize > spaceBytesLeft {
		hotness := entry.Hotness(instant)
		missingSpace := entry.ByteSize - spaceBytesLeft
		for i := 0; i < MaxMakeRoomAttempts; i++ {
			freedSpace += self.removeRandEntry(hotness, instant)
			if freedSpace >= missingSpace { goto roomMade }
		}

		// we didn't make enough room for the new entry. desist.
		if freedSpace != 0 {
			atomic.AddUint32(&self.spaceBytesLeft, freedSpace)
		}
		return
	}

roomMade:
	self.mutex.Lock()
	defer self.mutex.Unlock()
	if freedSpace != 0 { atomic.AddUint32(&self.spaceBytesLeft, freedSpace) }
	_, alreadyExists = self.bitmaps[key]
	if alreadyExists { return }
	if atomic.LoadUint32(&self.spaceBytesLeft) < entry.ByteSize { return }
	newLeft := atomic.AddUint32(&self.spaceBytesLeft, ^uint32(entry.ByteSize - 1))
	if newLeft < atomic.LoadUint32(&self.lowestBytesLeft) {
		atomic.StoreUint32(&self.lowestBytesLeft, newLeft)
	}
	self.bitmaps[key] = entry
}

// Gets the bitmap associated to the given key.
func (self *BitmapCache) Get(key Key) (*glyph.CharBitmap, bool) {
	self.mutex.RLock()
	entry, found := self.bitmaps[key]
	self.mutex.RUnlock()
	if !found { return nil, false }
	entry.IncreaseAccessCount()
	return entry.Bitmap, true
}

// Returns the number of bitmaps currently stored.
func (self *BitmapCache) Len() int {
	self.mutex.RLock()
	defer self.mutex.RUnlock()
	return len(self.bitmaps)
}

// Returns an approximation of the number of bytes taken by the
// bitmaps currently stored in the cache.
func (self *BitmapCache) ApproxByteSize() int {
	return int(atomic.LoadUint32(&self.byteSizeLimit) - atomic.LoadUint32(&self.spaceBytesLeft))
}

// Returns an approximation of the maximum amount of bytes that the
// cache has been filled with at any point of its life.
func (self *BitmapCache) PeakSize() int {
	return int(atomic.LoadUint32(&self.byteSizeLimit) - atomic.LoadUint32(&self.lowestBytesLeft))
}
