package bytecode

// Heap owns every object the compiler and VM allocate: the string intern
// pool and the append-only allocation list objects are linked into as
// they are created. A Heap is shared between a compile and the VM that
// eventually runs its output, so that string literals baked into constant
// pools intern against the same pool the running program's concatenations
// use.
//
// Objects are freed in one pass when the Heap is discarded (see Free) —
// there is no tracing collector, by design (see the object graph note in
// the design notes this package's callers keep).
type Heap struct {
	strings *Table
	objects Object
}

// NewHeap returns an empty Heap with a fresh intern pool.
func NewHeap() *Heap {
	return &Heap{strings: NewTable()}
}

// link appends obj to the allocation list so Free can reach it later.
func (h *Heap) link(obj Object) {
	obj.setObjNext(h.objects)
	h.objects = obj
}

// InternString returns the canonical ObjString for the given bytes,
// allocating one only if this exact content has never been seen before.
// Every String object in the system passes through here, which is what
// makes string identity equivalent to string content equality.
func (h *Heap) InternString(chars string) *ObjString {
	hash := fnv1a32(chars)
	if existing := h.strings.FindString(chars, hash); existing != nil {
		return existing
	}
	str := &ObjString{Chars: chars, Hash: hash}
	h.link(str)
	h.strings.Set(str, NilVal)
	return str
}

// fnv1a32 computes the 32-bit FNV-1a hash used to key interned strings.
func fnv1a32(s string) uint32 {
	const (
		offsetBasis = 2166136261
		prime       = 16777619
	)
	hash := uint32(offsetBasis)
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= prime
	}
	return hash
}

// NewFunction allocates and links a function object.
func (h *Heap) NewFunction(name string, chunk *Chunk, arity int) *ObjFunction {
	fn := &ObjFunction{Name: name, Chunk: chunk, Arity: arity}
	h.link(fn)
	return fn
}

// NewNative allocates and links a native function object.
func (h *Heap) NewNative(name string, arity int, fn NativeFn) *ObjNative {
	native := &ObjNative{Name: name, Arity: arity, Fn: fn}
	h.link(native)
	return native
}

// NewUserHash allocates and links an empty user hash.
func (h *Heap) NewUserHash() *ObjUserHash {
	uh := &ObjUserHash{Table: NewTable()}
	h.link(uh)
	return uh
}

// NewUserArray allocates and links an empty user array.
func (h *Heap) NewUserArray() *ObjUserArray {
	ua := &ObjUserArray{}
	h.link(ua)
	return ua
}

// NewFileHandle allocates and links a file handle object.
func (h *Heap) NewFileHandle() *ObjFileHandle {
	fh := &ObjFileHandle{}
	h.link(fh)
	return fh
}

// NewError allocates and links an error object. The VM does not call it:
// a NativeResult failure carries its own unlinked ObjError (see Fail), and
// the VM formats that directly into a runtime error. User code never
// constructs one directly.
func (h *Heap) NewError(kind ErrorKind, message string, errno *int) *ObjError {
	e := &ObjError{Kind: kind, Message: message, Errno: errno}
	h.link(e)
	return e
}

// Free walks the allocation list once, dropping every reference. Go's
// garbage collector reclaims the underlying memory; this just matches the
// "free everything at teardown" lifecycle the design calls for instead of
// ever running incremental collection.
func (h *Heap) Free() {
	h.objects = nil
	h.strings = NewTable()
}
