package motion

import "reflect"

// activeTweens maps a target identity to the tween currently driving it.
// Tweens register on start and remove themselves when they stop, complete or
// reset, so no entry outlives its owner's run.
var activeTweens = map[any]*Tween{}

// refKey identifies a reference-typed value (map, slice, func) by address,
// since those cannot be used as map keys directly.
type refKey struct {
	typ reflect.Type
	ptr uintptr
}

// targetKey derives the registry key for v, or nil if v has no stable
// identity.
func targetKey(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		if rv.IsNil() {
			return nil
		}
		return refKey{typ: rv.Type(), ptr: rv.Pointer()}
	}
	if !rv.Comparable() {
		return nil
	}
	return v
}

// ActiveTween returns the tween registered for target, if any. target is
// matched the same way tweens derive their key: an explicit key, an element
// pointer or a State map.
func ActiveTween(target any) (*Tween, bool) {
	key := targetKey(target)
	if key == nil {
		return nil, false
	}
	t, ok := activeTweens[key]
	return t, ok
}

// claim registers t under its key, stopping and evicting any other tween
// that holds it.
func (t *Tween) claim() {
	if t.overwrite == OverwriteOff || t.key == nil {
		return
	}
	if prev := activeTweens[t.key]; prev != nil && prev != t {
		delete(activeTweens, t.key)
		prev.Stop()
		if t.onOverwrite != nil {
			t.onOverwrite(prev)
		}
		t.sched.emit(EventOverwrite, t.Controller)
	}
	activeTweens[t.key] = t
}

// release removes t from the registry if it still owns its key.
func (t *Tween) release() {
	if t.key == nil {
		return
	}
	if activeTweens[t.key] == t {
		delete(activeTweens, t.key)
	}
}
