// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import "cmp"

// Default makes *dst point to a copy of def if it is nil, so optional
// settings which are missing in a config file take their default
// values. Non-nil settings are kept.
func Default[T any](dst **T, def T) {
	if *dst == nil {
		*dst = &def
	}
}

// Range is an inclusive range of acceptable values. A nil Min or Max
// leaves that side of the range open.
type Range[T cmp.Ordered] struct {
	Min, Max *T
}

// Between returns the closed [minb, maxb] range.
func Between[T cmp.Ordered](minb, maxb T) Range[T] {
	return Range[T]{Min: &minb, Max: &maxb}
}

// AtLeast returns the [minb, +inf) range.
func AtLeast[T cmp.Ordered](minb T) Range[T] {
	return Range[T]{Min: &minb}
}

// OutOfRangeError reports a value which was clamped into its Range.
type OutOfRangeError[T cmp.Ordered] struct {
	Value T    // the original value
	Below bool // true if Value was less than the range Min
}

func (e *OutOfRangeError[T]) Error() string {
	if e.Below {
		return "value is less than min"
	}
	return "value is greater than max"
}

// Clamp returns nil if value is nil (an unset setting) or falls in
// the r range. Otherwise, *value is replaced by the violated bound
// and an OutOfRangeError is returned with the original value.
func (r Range[T]) Clamp(value *T) *OutOfRangeError[T] {
	if value == nil {
		return nil
	}
	v := *value
	switch {
	case r.Min != nil && v < *r.Min:
		*value = *r.Min
		return &OutOfRangeError[T]{Value: v, Below: true}
	case r.Max != nil && v > *r.Max:
		*value = *r.Max
		return &OutOfRangeError[T]{Value: v}
	}
	return nil
}
