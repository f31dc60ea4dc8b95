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

// DMLResult is the outcome of insert, upsert or delete.
type DMLResult struct {
	IDs         IDArray
	InsertCount int64
	UpsertCount int64
	DeleteCount int64
	Timestamp   uint64
}

// SingleResult holds the hits of one query vector.
type SingleResult struct {
	IDs    IDArray
	Scores []float32
	Fields []Field
}

// Len is the number of hits.
func (r SingleResult) Len() int {
	return r.IDs.Len()
}

// GetField returns the output column with the given name.
func (r SingleResult) GetField(name string) Field {
	return fieldByName(r.Fields, name)
}

// SearchResults holds one SingleResult per query vector.
type SearchResults struct {
	Results []SingleResult
}

// QueryResults holds the output columns of Query and Get.
type QueryResults struct {
	Fields []Field
}

func (r QueryResults) GetField(name string) Field {
	return fieldByName(r.Fields, name)
}

// RowCount is the row count of the first column, or 0 without columns.
func (r QueryResults) RowCount() int {
	if len(r.Fields) == 0 {
		return 0
	}
	return r.Fields[0].Count()
}

func fieldByName(fields []Field, name string) Field {
	for _, f := range fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}
