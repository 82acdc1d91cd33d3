package xmlschema

import (
	"sort"

	"github.com/samber/lo"
)

// MergeOptions controls how disagreeing sibling schemas are unified.
// The zero value resolves disagreements by sample order.
type MergeOptions struct {
	// StrictKinds unifies disagreeing kinds (integer+float becomes float,
	// anything else becomes text) instead of letting the later kind win.
	StrictKinds bool
	// OptionalMissingItems marks a leaf item optional when it is absent from
	// at least one of the merged structural siblings.
	OptionalMissingItems bool
}

// MergeAttributes unions two attribute maps. A key present on only one side
// becomes optional. For a key present on both sides the kind from b wins
// (or both are unified under StrictKinds); the result stays optional if
// either side already was.
func MergeAttributes(a, b Attributes, opts MergeOptions) Attributes {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(Attributes, len(a)+len(b))
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			out[k] = av.AsOptional()
			continue
		}
		out[k] = mergeValue(av, bv, opts, false)
	}
	for k, bv := range b {
		if _, ok := a[k]; !ok {
			out[k] = bv.AsOptional()
		}
	}
	return out
}

// mergeValue combines two values seen for the same field. keepFirst selects
// the first kind instead of the last one when kinds disagree and StrictKinds
// is off.
func mergeValue(a, b Value, opts MergeOptions, keepFirst bool) Value {
	optional := a.Optional || b.Optional
	var kind ValueKind
	switch {
	case opts.StrictKinds:
		var widened bool
		kind, widened = unifyKinds(a.ValueKind, b.ValueKind)
		optional = optional || widened
	case keepFirst:
		kind = a.ValueKind
	default:
		kind = b.ValueKind
	}
	return Value{ValueKind: kind, Optional: optional}
}

// unifyKinds returns the narrowest kind able to hold both a and b. The
// boolean is true when one side carried no value at all.
func unifyKinds(a, b ValueKind) (ValueKind, bool) {
	switch {
	case a == b:
		return a, false
	case a.Kind == KindUnset:
		return b, true
	case b.Kind == KindUnset:
		return a, true
	case isNumeric(a) && isNumeric(b):
		return Float, false
	default:
		return Text, false
	}
}

func isNumeric(k ValueKind) bool {
	return k.Kind == KindInteger || k.Kind == KindFloat
}

// Merge unifies two occurrences of the same leaf field. Attributes are
// merged with MergeAttributes; the item's own kind stays the first one
// unless StrictKinds is set.
func (it LeafItem) Merge(other LeafItem, opts MergeOptions) LeafItem {
	return LeafItem{
		Name:       it.Name,
		Value:      mergeValue(it.Value, other.Value, opts, true),
		Attributes: MergeAttributes(it.Attributes, other.Attributes, opts),
		Repeated:   it.Repeated || other.Repeated,
	}
}

// GroupItems groups leaf items by name and folds every group left to right
// with LeafItem.Merge. The result is ordered by name.
func GroupItems(items []LeafItem, opts MergeOptions) []LeafItem {
	if len(items) == 0 {
		return nil
	}
	groups := lo.GroupBy(items, func(it LeafItem) string { return it.Name })
	names := lo.Keys(groups)
	sort.Strings(names)

	out := make([]LeafItem, 0, len(names))
	for _, name := range names {
		group := groups[name]
		merged := lo.Reduce(group[1:], func(acc LeafItem, it LeafItem, _ int) LeafItem {
			return acc.Merge(it, opts)
		}, group[0].Clone())
		out = append(out, merged)
	}
	return out
}

// normalizeItems groups the items of a single element instance, flagging
// names that occurred more than once as repeated.
func normalizeItems(items []LeafItem, opts MergeOptions) []LeafItem {
	counts := lo.CountValuesBy(items, func(it LeafItem) string { return it.Name })
	grouped := GroupItems(items, opts)
	for i := range grouped {
		if counts[grouped[i].Name] > 1 {
			grouped[i].Repeated = true
		}
	}
	return grouped
}

// Merge unifies two structural siblings occupying the same child slot.
// Attributes are merged, leaf items are concatenated and regrouped by name,
// and nested elements are concatenated without further merging: deeper
// levels are merged when the declaration builder descends into them.
func (e *Element) Merge(other *Element, opts MergeOptions) *Element {
	out := &Element{
		Name:       e.Name,
		Attributes: MergeAttributes(e.Attributes, other.Attributes, opts),
		Value:      mergeValue(e.Value, other.Value, opts, true),
	}

	items := make([]LeafItem, 0, len(e.Items)+len(other.Items))
	items = append(items, e.Items...)
	items = append(items, other.Items...)
	out.Items = GroupItems(items, opts)

	if opts.OptionalMissingItems {
		left := lo.SliceToMap(e.Items, func(it LeafItem) (string, bool) { return it.Name, true })
		right := lo.SliceToMap(other.Items, func(it LeafItem) (string, bool) { return it.Name, true })
		for i := range out.Items {
			name := out.Items[i].Name
			if !left[name] || !right[name] {
				out.Items[i].Value = out.Items[i].Value.AsOptional()
			}
		}
	}

	out.Elements = make([]*Element, 0, len(e.Elements)+len(other.Elements))
	for _, c := range e.Elements {
		out.Elements = append(out.Elements, c.Clone())
	}
	for _, c := range other.Elements {
		out.Elements = append(out.Elements, c.Clone())
	}
	if len(out.Elements) == 0 {
		out.Elements = nil
	}
	return out
}

// MergeElements folds siblings first to last into one representative
// element. It returns nil for an empty slice.
func MergeElements(els []*Element, opts MergeOptions) *Element {
	if len(els) == 0 {
		return nil
	}
	if len(els) == 1 {
		return els[0].Clone()
	}
	return lo.Reduce(els[1:], func(acc *Element, el *Element, _ int) *Element {
		return acc.Merge(el, opts)
	}, els[0].Clone())
}
