// Copyright 2025 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package entity

import (
	"github.com/spf13/cast"
)

// IDArray holds primary keys. Exactly one of the two variants is populated.
type IDArray struct {
	intIDs []int64
	strIDs []string
	isStr  bool
}

func NewIntIDs(ids []int64) IDArray {
	return IDArray{intIDs: ids}
}

func NewStrIDs(ids []string) IDArray {
	return IDArray{strIDs: ids, isStr: true}
}

func (a IDArray) IsIntegerID() bool { return !a.isStr }

func (a IDArray) IntIDs() []int64 { return a.intIDs }

func (a IDArray) StrIDs() []string { return a.strIDs }

func (a IDArray) Len() int {
	if a.isStr {
		return len(a.strIDs)
	}
	return len(a.intIDs)
}

// Slice returns the ids in [start, end).
func (a IDArray) Slice(start, end int) IDArray {
	if a.isStr {
		return NewStrIDs(a.strIDs[start:end])
	}
	return NewIntIDs(a.intIDs[start:end])
}

// Strings renders every id as text.
func (a IDArray) Strings() []string {
	if a.isStr {
		return a.strIDs
	}
	out := make([]string, len(a.intIDs))
	for i, id := range a.intIDs {
		out[i] = cast.ToString(id)
	}
	return out
}
